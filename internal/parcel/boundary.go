package parcel

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Style selects how parcel boundaries are produced.
type Style int

const (
	// StyleNone disables boundary extraction entirely.
	StyleNone Style = iota
	// StyleMidpoint traces the dual curve through every triangle that
	// straddles a boundary, using the midpoints of boundary edges.
	StyleMidpoint
)

// Polyline is one connected boundary curve between parcels at the current
// frame.
type Polyline []mgl64.Vec3

// Boundaries finds the mesh edges whose endpoints carry different parcel
// labels and chains their midpoints into polylines. It is recomputed from
// scratch every frame from the current (interpolated) vertex positions and
// the original, unchanging labels: labels are categorical and never
// interpolate, only the geometric midpoints move. A triangle whose three
// vertices carry three distinct labels forms a 3-way junction and emits
// short segments between its midpoints instead of failing.
func Boundaries(verts []mgl64.Vec3, faces [][3]int, labels []int, style Style) []Polyline {
	if style == StyleNone || Distinct(labels) <= 1 {
		return nil
	}

	// One node per boundary edge, placed at the edge midpoint. Nodes are
	// registered in face-scan order to keep the output deterministic.
	nodeOf := make(map[[2]int]int)
	var nodes []mgl64.Vec3
	var adj [][]int
	linked := make(map[[2]int]bool)

	node := func(a, b int) int {
		key := edgeKey(a, b)
		if id, ok := nodeOf[key]; ok {
			return id
		}
		id := len(nodes)
		nodeOf[key] = id
		nodes = append(nodes, verts[a].Add(verts[b]).Mul(0.5))
		adj = append(adj, nil)
		return id
	}
	link := func(a, b int) {
		if a == b {
			return
		}
		key := [2]int{min(a, b), max(a, b)}
		if linked[key] {
			return
		}
		linked[key] = true
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}

	for _, f := range faces {
		var ids []int
		for c := 0; c < 3; c++ {
			a, b := f[c], f[(c+1)%3]
			if labels[a] != labels[b] {
				ids = append(ids, node(a, b))
			}
		}
		// A straddling triangle has 2 boundary edges; a 3-way junction
		// has 3. Link every pair within the face.
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				link(ids[i], ids[j])
			}
		}
	}

	return chain(nodes, adj)
}

// chain walks the midpoint graph and returns each connected run as one
// polyline. Open runs start at odd-degree nodes; leftover cycles are
// picked up afterwards.
func chain(nodes []mgl64.Vec3, adj [][]int) []Polyline {
	used := make(map[[2]int]bool)
	take := func(a, b int) bool {
		key := [2]int{min(a, b), max(a, b)}
		if used[key] {
			return false
		}
		used[key] = true
		return true
	}

	var out []Polyline
	walk := func(start int) {
		for {
			line := Polyline{nodes[start]}
			cur := start
			advanced := false
			for {
				next := -1
				for _, nb := range adj[cur] {
					if take(cur, nb) {
						next = nb
						break
					}
				}
				if next < 0 {
					break
				}
				line = append(line, nodes[next])
				cur = next
				advanced = true
			}
			if !advanced {
				return
			}
			out = append(out, line)
		}
	}

	// Endpoints and junctions first, so open curves do not start mid-run.
	for i := range adj {
		if len(adj[i])%2 == 1 {
			walk(i)
		}
	}
	for i := range adj {
		walk(i)
	}
	return out
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
