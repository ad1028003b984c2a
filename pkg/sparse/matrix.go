// Package sparse implements the compressed sparse row matrix used for
// the barycentric weight map, with Matrix Market and binary export.
package sparse

import "fmt"

// Matrix is a CSR sparse matrix built row by row. Row i's entries
// occupy col[rowPtr[i]:rowPtr[i+1]] / val[rowPtr[i]:rowPtr[i+1]],
// with column indices strictly increasing within a row.
type Matrix struct {
	cols   int
	rowPtr []int32
	col    []int32
	val    []float64
}

// NewMatrix returns an empty matrix with the given column count and no
// rows yet.
func NewMatrix(cols int) *Matrix {
	if cols < 0 {
		panic("sparse: negative column count")
	}
	return &Matrix{cols: cols, rowPtr: []int32{0}}
}

// Rows returns the number of rows appended so far.
func (m *Matrix) Rows() int { return len(m.rowPtr) - 1 }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.cols }

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int { return len(m.val) }

// AppendRow appends one row given parallel column/value slices. Columns
// must be strictly increasing and in range; violations are programmer
// errors and panic.
func (m *Matrix) AppendRow(cols []int32, vals []float64) {
	if len(cols) != len(vals) {
		panic("sparse: column/value length mismatch")
	}
	for i, c := range cols {
		if c < 0 || int(c) >= m.cols {
			panic(fmt.Sprintf("sparse: column %d out of range [0,%d)", c, m.cols))
		}
		if i > 0 && cols[i-1] >= c {
			panic("sparse: columns not strictly increasing")
		}
	}
	m.col = append(m.col, cols...)
	m.val = append(m.val, vals...)
	m.rowPtr = append(m.rowPtr, int32(len(m.col)))
}

// Row returns row i's column indices and values. The slices alias the
// matrix storage and must not be modified.
func (m *Matrix) Row(i int) ([]int32, []float64) {
	lo, hi := m.rowPtr[i], m.rowPtr[i+1]
	return m.col[lo:hi], m.val[lo:hi]
}

// RowSum returns the sum of row i's values.
func (m *Matrix) RowSum(i int) float64 {
	_, vals := m.Row(i)
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum
}

// MulVec computes y = M·x, lifting a function on columns to rows.
// len(x) must equal Cols.
func (m *Matrix) MulVec(x []float64) []float64 {
	if len(x) != m.cols {
		panic("sparse: dimension mismatch in MulVec")
	}
	y := make([]float64, m.Rows())
	for i := range y {
		cols, vals := m.Row(i)
		for k, c := range cols {
			y[i] += vals[k] * x[c]
		}
	}
	return y
}
