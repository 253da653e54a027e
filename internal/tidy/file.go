package tidy

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ecomstat/ecomclean/internal/model"
)

// Output formats.
const (
	FormatAuto  = "auto"
	FormatCSV   = "csv"
	FormatArrow = "arrow"
)

// ErrUnknownFormat is returned for an output format other than csv or arrow.
var ErrUnknownFormat = errors.New("unknown output format")

// ResolveFormat picks the serialization for path. An explicit format wins;
// "auto" or empty selects arrow for .arrow/.feather/.ipc and csv otherwise.
func ResolveFormat(path, format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case FormatCSV, FormatArrow:
		return f, nil
	case "", FormatAuto:
		switch strings.ToLower(filepath.Ext(path)) {
		case ".arrow", ".feather", ".ipc":
			return FormatArrow, nil
		default:
			return FormatCSV, nil
		}
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// WriteFile writes recs to path in the given format. Parent directories are
// created as needed. The file is written to a temporary sibling and renamed
// into place so a failed run never leaves a partial output behind.
func WriteFile(path, format string, recs []model.TidyRecord) (err error) {
	f, err := ResolveFormat(path, format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	switch f {
	case FormatArrow:
		err = WriteArrow(tmp, recs)
	default:
		bw := bufio.NewWriter(tmp)
		if err = WriteRecords(bw, recs); err == nil {
			err = bw.Flush()
		}
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// ReadFile reads a tidy table written by WriteFile.
func ReadFile(path, format string) ([]model.TidyRecord, error) {
	f, err := ResolveFormat(path, format)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	if f == FormatArrow {
		return ReadArrow(file)
	}
	return ReadRecords(bufio.NewReader(file))
}
