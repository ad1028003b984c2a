package sparse

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"os"
)

const (
	magicBytes = "RMTWMAP1"
	version    = uint32(1)
	maxRows    = 100_000_000
	maxNNZ     = 1_000_000_000
)

// fileHeader is the binary header.
type fileHeader struct {
	Magic   [8]byte
	Version uint32
	Rows    uint32
	Cols    uint32
	NNZ     uint32
}

// WriteBinary serializes the matrix to a binary sidecar file. The file
// is written to a temporary path and renamed into place, with a CRC32
// trailer over the whole payload.
func WriteBinary(path string, m *Matrix) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("sparse: create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath) // clean up on error
	}()

	w := &crc32Writer{w: f, hash: crc32.NewIEEE()}

	hdr := fileHeader{
		Version: version,
		Rows:    uint32(m.Rows()),
		Cols:    uint32(m.cols),
		NNZ:     uint32(m.NNZ()),
	}
	copy(hdr.Magic[:], magicBytes)
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("sparse: write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, m.rowPtr); err != nil {
		return fmt.Errorf("sparse: write row pointers: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, m.col); err != nil {
		return fmt.Errorf("sparse: write columns: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, m.val); err != nil {
		return fmt.Errorf("sparse: write values: %w", err)
	}

	// CRC32 trailer, not included in the checksum itself.
	if err := binary.Write(f, binary.LittleEndian, w.hash.Sum32()); err != nil {
		return fmt.Errorf("sparse: write checksum: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("sparse: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("sparse: rename into place: %w", err)
	}
	return nil
}

// ReadBinary deserializes a matrix written by WriteBinary, verifying
// magic, version, size sanity bounds and checksum.
func ReadBinary(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sparse: open %s: %w", path, err)
	}
	defer f.Close()

	r := &crc32Reader{r: f, hash: crc32.NewIEEE()}

	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("sparse: read header: %w", err)
	}
	if string(hdr.Magic[:]) != magicBytes {
		return nil, fmt.Errorf("sparse: bad magic %q", hdr.Magic)
	}
	if hdr.Version != version {
		return nil, fmt.Errorf("sparse: unsupported version %d", hdr.Version)
	}
	if hdr.Rows > maxRows || hdr.NNZ > maxNNZ {
		return nil, fmt.Errorf("sparse: implausible sizes rows=%d nnz=%d", hdr.Rows, hdr.NNZ)
	}

	m := &Matrix{
		cols:   int(hdr.Cols),
		rowPtr: make([]int32, hdr.Rows+1),
		col:    make([]int32, hdr.NNZ),
		val:    make([]float64, hdr.NNZ),
	}
	if err := binary.Read(r, binary.LittleEndian, m.rowPtr); err != nil {
		return nil, fmt.Errorf("sparse: read row pointers: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, m.col); err != nil {
		return nil, fmt.Errorf("sparse: read columns: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, m.val); err != nil {
		return nil, fmt.Errorf("sparse: read values: %w", err)
	}

	sum := r.hash.Sum32()
	var stored uint32
	if err := binary.Read(f, binary.LittleEndian, &stored); err != nil {
		return nil, fmt.Errorf("sparse: read checksum: %w", err)
	}
	if stored != sum {
		return nil, fmt.Errorf("sparse: checksum mismatch: file %08x computed %08x", stored, sum)
	}
	return m, nil
}

type crc32Writer struct {
	w    io.Writer
	hash hash.Hash32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.hash.Write(p[:n])
	return n, err
}

type crc32Reader struct {
	r    io.Reader
	hash hash.Hash32
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.hash.Write(p[:n])
	return n, err
}
