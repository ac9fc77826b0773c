package asset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DecodeOBJ reads the geometry of a Wavefront OBJ file. Only "v" and "f"
// statements are used; polygons are fan-triangulated. Face references may be
// negative (relative to the vertices read so far).
func DecodeOBJ(r io.Reader) (positions [][3]float32, indices []uint32, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		row := strings.TrimSpace(sc.Text())
		if row == "" || row[0] == '#' {
			continue
		}
		fields := strings.Fields(row)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("obj line %d: vertex needs 3 coordinates", line)
			}
			var p [3]float32
			for i := range p {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, nil, fmt.Errorf("obj line %d: %w", line, err)
				}
				p[i] = float32(f)
			}
			positions = append(positions, p)
		case "f":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("obj line %d: face needs at least 3 vertices", line)
			}
			face := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := objIndex(ref, len(positions))
				if err != nil {
					return nil, nil, fmt.Errorf("obj line %d: %w", line, err)
				}
				face = append(face, idx)
			}
			for i := 2; i < len(face); i++ {
				indices = append(indices, face[0], face[i-1], face[i])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("obj: %w", err)
	}
	return positions, indices, nil
}

// objIndex resolves the position part of a "v", "v/vt", "v//vn" or
// "v/vt/vn" reference into a zero-based index.
func objIndex(ref string, count int) (uint32, error) {
	head, _, _ := strings.Cut(ref, "/")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("bad face reference %q", ref)
	}
	switch {
	case n > 0 && n <= count:
		return uint32(n - 1), nil
	case n < 0 && -n <= count:
		return uint32(count + n), nil
	}
	return 0, fmt.Errorf("face reference %d out of range (%d vertices)", n, count)
}
