package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ParseError describes a malformed line in a mesh file.
type ParseError struct {
	Format string
	Line   int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mesh: %s line %d: %s", e.Format, e.Line, e.Msg)
}

// ReadOBJ parses a Wavefront OBJ stream. Only v and f records are
// consumed; normals, texture coordinates and grouping directives are
// skipped. Faces with more than three corners are fan-triangulated.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, &ParseError{Format: "obj", Line: lineNo, Msg: "vertex needs 3 coordinates"}
			}
			var c [3]float64
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, &ParseError{Format: "obj", Line: lineNo, Msg: "bad coordinate " + fields[i+1]}
				}
				c[i] = v
			}
			m.V = append(m.V, r3.Vec{X: c[0], Y: c[1], Z: c[2]})
		case "f":
			if len(fields) < 4 {
				return nil, &ParseError{Format: "obj", Line: lineNo, Msg: "face needs at least 3 corners"}
			}
			corners := make([]int32, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := parseOBJIndex(tok, len(m.V))
				if err != nil {
					return nil, &ParseError{Format: "obj", Line: lineNo, Msg: err.Error()}
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				m.F = append(m.F, [3]int32{corners[0], corners[i], corners[i+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mesh: read obj: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// parseOBJIndex decodes a face corner token ("7", "7/1", "7//3", "-1")
// into a zero-based vertex index.
func parseOBJIndex(tok string, numVerts int) (int32, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", tok)
	}
	if v < 0 {
		// Negative indices are relative to the current vertex count.
		v += numVerts
	} else {
		v--
	}
	if v < 0 || v >= numVerts {
		return 0, fmt.Errorf("face index %q out of range", tok)
	}
	return int32(v), nil
}

// WriteOBJ writes the mesh as Wavefront OBJ.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.V {
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z); err != nil {
			return fmt.Errorf("mesh: write obj: %w", err)
		}
	}
	for _, f := range m.F {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1); err != nil {
			return fmt.Errorf("mesh: write obj: %w", err)
		}
	}
	return bw.Flush()
}
