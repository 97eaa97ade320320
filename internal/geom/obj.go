package geom

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// LoadOBJ reads a Wavefront OBJ surface. Only v and f records matter here;
// normals, texture coordinates and materials are skipped. Polygon faces are
// fan-triangulated and negative (relative) indices are resolved.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &Mesh{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: vertex needs 3 coordinates", path, lineNo)
			}
			var v mgl64.Vec3
			for i := 0; i < 3; i++ {
				v[i], err = strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
				}
			}
			m.Verts = append(m.Verts, v)
		case "f":
			idx := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				// f records may carry v/vt/vn triples.
				head := strings.SplitN(tok, "/", 2)[0]
				vi, err := strconv.Atoi(head)
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
				}
				if vi < 0 {
					vi += len(m.Verts)
				} else {
					vi--
				}
				idx = append(idx, vi)
			}
			if len(idx) < 3 {
				return nil, fmt.Errorf("%s:%d: face needs at least 3 vertices", path, lineNo)
			}
			for i := 2; i < len(idx); i++ {
				m.Faces = append(m.Faces, [3]int{idx[0], idx[i-1], idx[i]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
