package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ReadOFF parses an Object File Format stream. Vertex colors and
// per-face extras after the corner indices are ignored. Faces with more
// than three corners are fan-triangulated.
func ReadOFF(r io.Reader) (*Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0

	next := func() ([]string, error) {
		for sc.Scan() {
			lineNo++
			line := sc.Text()
			if i := strings.IndexByte(line, '#'); i >= 0 {
				line = line[:i]
			}
			fields := strings.Fields(line)
			if len(fields) > 0 {
				return fields, nil
			}
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("mesh: read off: %w", err)
		}
		return nil, &ParseError{Format: "off", Line: lineNo, Msg: "unexpected end of file"}
	}

	fields, err := next()
	if err != nil {
		return nil, err
	}
	if fields[0] != "OFF" {
		return nil, &ParseError{Format: "off", Line: lineNo, Msg: "missing OFF header"}
	}
	// Counts may share the header line ("OFF 8 6 0") or follow it.
	if len(fields) == 1 {
		if fields, err = next(); err != nil {
			return nil, err
		}
	} else {
		fields = fields[1:]
	}
	if len(fields) < 2 {
		return nil, &ParseError{Format: "off", Line: lineNo, Msg: "expected vertex and face counts"}
	}
	nv, err1 := strconv.Atoi(fields[0])
	nf, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || nv < 0 || nf < 0 {
		return nil, &ParseError{Format: "off", Line: lineNo, Msg: "bad element counts"}
	}

	m := &Mesh{V: make([]r3.Vec, 0, nv), F: make([][3]int32, 0, nf)}
	for i := 0; i < nv; i++ {
		if fields, err = next(); err != nil {
			return nil, err
		}
		if len(fields) < 3 {
			return nil, &ParseError{Format: "off", Line: lineNo, Msg: "vertex needs 3 coordinates"}
		}
		var c [3]float64
		for j := 0; j < 3; j++ {
			if c[j], err = strconv.ParseFloat(fields[j], 64); err != nil {
				return nil, &ParseError{Format: "off", Line: lineNo, Msg: "bad coordinate " + fields[j]}
			}
		}
		m.V = append(m.V, r3.Vec{X: c[0], Y: c[1], Z: c[2]})
	}
	for i := 0; i < nf; i++ {
		if fields, err = next(); err != nil {
			return nil, err
		}
		k, err := strconv.Atoi(fields[0])
		if err != nil || k < 3 || len(fields) < 1+k {
			return nil, &ParseError{Format: "off", Line: lineNo, Msg: "bad face record"}
		}
		corners := make([]int32, k)
		for j := 0; j < k; j++ {
			v, err := strconv.Atoi(fields[1+j])
			if err != nil || v < 0 || v >= nv {
				return nil, &ParseError{Format: "off", Line: lineNo, Msg: "face index out of range"}
			}
			corners[j] = int32(v)
		}
		for j := 1; j+1 < k; j++ {
			m.F = append(m.F, [3]int32{corners[0], corners[j], corners[j+1]})
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// WriteOFF writes the mesh in Object File Format.
func WriteOFF(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "OFF\n%d %d 0\n", len(m.V), len(m.F)); err != nil {
		return fmt.Errorf("mesh: write off: %w", err)
	}
	for _, v := range m.V {
		if _, err := fmt.Fprintf(bw, "%g %g %g\n", v.X, v.Y, v.Z); err != nil {
			return fmt.Errorf("mesh: write off: %w", err)
		}
	}
	for _, f := range m.F {
		if _, err := fmt.Fprintf(bw, "3 %d %d %d\n", f[0], f[1], f[2]); err != nil {
			return fmt.Errorf("mesh: write off: %w", err)
		}
	}
	return bw.Flush()
}
