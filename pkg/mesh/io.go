package mesh

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a mesh file, choosing the format from the file extension.
// Supported: .obj, .off, .stl.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	switch ext(path) {
	case ".obj":
		return ReadOBJ(f)
	case ".off":
		return ReadOFF(f)
	case ".stl":
		return ReadSTL(f)
	}
	return nil, fmt.Errorf("mesh: unsupported format %q", ext(path))
}

// Save writes a mesh file, choosing the format from the file extension.
// Supported: .obj, .off, .stl.
func Save(path string, m *Mesh) error {
	var write func(*os.File) error
	switch ext(path) {
	case ".obj":
		write = func(f *os.File) error { return WriteOBJ(f, m) }
	case ".off":
		write = func(f *os.File) error { return WriteOFF(f, m) }
	case ".stl":
		write = func(f *os.File) error { return WriteSTL(f, m) }
	default:
		return fmt.Errorf("mesh: unsupported format %q", ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mesh: create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
