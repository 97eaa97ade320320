// Package geom holds the triangular surface model and the row-wise linear
// interpolation primitive shared by the morphing pipeline.
package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/cortexmorph/internal/fault"
)

// Mesh is a triangular surface: vertex positions plus 0-based face indices.
// Faces define a fixed topology for an entire animation; only vertex
// positions vary between keyframes.
type Mesh struct {
	Verts []mgl64.Vec3
	Faces [][3]int
}

// Validate checks that every face index references an existing vertex.
func (m *Mesh) Validate() error {
	n := len(m.Verts)
	if n == 0 {
		return fmt.Errorf("%w: mesh has no vertices", fault.ErrInvalidArgument)
	}
	if len(m.Faces) == 0 {
		return fmt.Errorf("%w: mesh has no faces", fault.ErrInvalidArgument)
	}
	for fi, f := range m.Faces {
		for _, vi := range f {
			if vi < 0 || vi >= n {
				return fmt.Errorf("%w: face %d references vertex %d of %d", fault.ErrInvalidArgument, fi, vi, n)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the vertex set.
func (m *Mesh) Bounds() (min, max mgl64.Vec3) {
	min = mgl64.Vec3{1e30, 1e30, 1e30}
	max = mgl64.Vec3{-1e30, -1e30, -1e30}
	for _, v := range m.Verts {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return min, max
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() mgl64.Vec3 {
	min, max := m.Bounds()
	return min.Add(max).Mul(0.5)
}

// VertexNormals returns per-vertex normals as the area-weighted average of
// incident face normals. Degenerate faces contribute nothing.
func VertexNormals(verts []mgl64.Vec3, faces [][3]int) []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, len(verts))
	for _, f := range faces {
		e1 := verts[f[1]].Sub(verts[f[0]])
		e2 := verts[f[2]].Sub(verts[f[0]])
		// Cross product length is twice the face area, which gives the
		// area weighting for free.
		fn := e1.Cross(e2)
		for _, vi := range f {
			normals[vi] = normals[vi].Add(fn)
		}
	}
	for i := range normals {
		if l := normals[i].Len(); l > 1e-12 {
			normals[i] = normals[i].Mul(1 / l)
		}
	}
	return normals
}

// VertexNormals returns smooth per-vertex normals for the mesh.
func (m *Mesh) VertexNormals() []mgl64.Vec3 {
	return VertexNormals(m.Verts, m.Faces)
}
