package sparse

import (
	"bufio"
	"fmt"
	"io"
)

// WriteMatrixMarket writes the matrix in Matrix Market coordinate
// format (1-based indices), the interchange format consumed by the
// correspondence pipelines downstream.
func WriteMatrixMarket(w io.Writer, m *Matrix) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%%%%MatrixMarket matrix coordinate real general\n"); err != nil {
		return fmt.Errorf("sparse: write market header: %w", err)
	}
	if _, err := fmt.Fprintf(bw, "%d %d %d\n", m.Rows(), m.Cols(), m.NNZ()); err != nil {
		return fmt.Errorf("sparse: write market size: %w", err)
	}
	for i := 0; i < m.Rows(); i++ {
		cols, vals := m.Row(i)
		for k, c := range cols {
			if _, err := fmt.Fprintf(bw, "%d %d %.17g\n", i+1, c+1, vals[k]); err != nil {
				return fmt.Errorf("sparse: write market entry: %w", err)
			}
		}
	}
	return bw.Flush()
}
