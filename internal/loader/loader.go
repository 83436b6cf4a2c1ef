// Package loader handles program image file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/machine"
)

// ErrIO is returned when the program image file can not be opened or read.
var ErrIO = errors.New("program image i/o failure")

// Loader handles loading program image files from disk.
type Loader struct{}

// New creates a new program image loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the program image file at the given path.
// Files that can not fit into the machine memory are rejected without
// reading their content, empty files are rejected after reading.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening file %s: %w", ErrIO, path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: getting file info %s: %w", ErrIO, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrIO, path)
	}
	if info.Size() > machine.MaxImageSize {
		return nil, fmt.Errorf("%w: file size %d exceeds %d bytes",
			machine.ErrImageTooLarge, info.Size(), machine.MaxImageSize)
	}

	// read one byte more than allowed to detect files that grew after stat
	data, err := io.ReadAll(io.LimitReader(file, machine.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading file %s: %w", ErrIO, path, err)
	}

	switch {
	case len(data) == 0:
		return nil, fmt.Errorf("%w: file %s", machine.ErrEmptyImage, path)
	case len(data) > machine.MaxImageSize:
		return nil, fmt.Errorf("%w: file %s", machine.ErrImageTooLarge, path)
	}
	return data, nil
}
