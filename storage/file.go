package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/bondbook"
	"go.uber.org/zap"
)

// File stores the slot in a local JSON file.
type File struct {
	path string
	log  *zap.Logger
}

// NewFile returns the storage for the file at path. The file is created on
// the first save.
func NewFile(path string, log *zap.Logger) *File {
	return &File{path: path, log: log}
}

// Path returns the file name.
func (f *File) Path() string { return f.path }

// Load reads the file. A missing file is an empty book.
func (f *File) Load(ctx context.Context) ([]bondbook.Instrument, error) {
	r, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.log.Debug("no book file yet", zap.String("path", f.path))
		return []bondbook.Instrument{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open book file: %w", err)
	}
	defer r.Close()
	instruments, err := bondbook.DecodeInstruments(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", f.path, err)
	}
	return instruments, nil
}

// Save writes the whole book to a temporary file then renames it over the
// previous one.
func (f *File) Save(ctx context.Context, instruments []bondbook.Instrument) error {
	data, err := bondbook.MarshalInstruments(instruments)
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("cannot create book file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write book file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write book file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("cannot replace book file: %w", err)
	}
	f.log.Debug("book file written", zap.String("path", f.path), zap.Int("bytes", len(data)))
	return nil
}
