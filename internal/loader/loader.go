// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/gr8/internal/vm"
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the program image from the given file. The file is rejected
// if it is empty or does not fit into the program space of the machine.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.read(file)
}

func (l *Loader) read(reader io.Reader) ([]byte, error) {
	// one byte more than allowed to detect oversized files without reading them completely
	data, err := io.ReadAll(io.LimitReader(reader, vm.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, vm.ErrEmptyProgram
	case len(data) > vm.MaxProgramSize:
		return nil, fmt.Errorf("%w: file exceeds the %d bytes of program space",
			vm.ErrProgramTooLarge, vm.MaxProgramSize)
	}
	return data, nil
}
