package grid

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrInputNotFound is returned when the input file does not exist.
var ErrInputNotFound = errors.New("input not found")

// Loader reads a survey file into a Grid.
type Loader interface {
	Load(r io.Reader) (*Grid, error)
	Format() string
}

// Registry holds named loaders.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry creates an empty loader registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

// Register adds a loader. Panics on duplicate format.
func (r *Registry) Register(l Loader) {
	key := strings.ToLower(l.Format())
	if _, ok := r.loaders[key]; ok {
		panic("duplicate loader format: " + key)
	}
	r.loaders[key] = l
}

// Get returns the loader for format, or nil.
func (r *Registry) Get(format string) Loader {
	return r.loaders[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with the CSV and XLSX loaders.
// sheet selects the XLSX worksheet; empty means the first sheet.
func DefaultRegistry(sheet string) *Registry {
	r := NewRegistry()
	r.Register(&CSVLoader{})
	r.Register(&XLSXLoader{Sheet: sheet})
	return r
}

// FormatAuto picks the loader from the file extension.
const FormatAuto = "auto"

// ResolveFormat maps "auto" (or "") to a concrete format using the extension of path.
func ResolveFormat(path, format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && format != FormatAuto {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return "xlsx"
	default:
		return "csv"
	}
}

// LoadFile opens path and loads it with the loader registered for format.
// A missing file yields an error wrapping ErrInputNotFound.
func (r *Registry) LoadFile(path, format string) (*Grid, error) {
	format = ResolveFormat(path, format)
	loader := r.Get(format)
	if loader == nil {
		return nil, fmt.Errorf("no loader for format %q", format)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	g, err := loader.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}
	return g, nil
}
