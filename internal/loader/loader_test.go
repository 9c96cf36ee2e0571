package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/gr8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{
			name: "small program",
			data: []byte{0x00, 0xE0, 0x12, 0x00},
		},
		{
			name: "odd length data",
			data: []byte{0x12, 0x00, 0xFF},
		},
		{
			name: "program filling all program space",
			data: make([]byte, vm.MaxProgramSize),
		},
		{
			name:    "empty file",
			data:    []byte{},
			wantErr: vm.ErrEmptyProgram,
		},
		{
			name:    "file too large",
			data:    make([]byte, vm.MaxProgramSize+1),
			wantErr: vm.ErrProgramTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTempFile(t, tt.data)

			data, err := New().Load(path)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Len(t, data, 0)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.data, data)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.ch8")

	_, err := New().Load(path)
	assert.ErrorContains(t, err, "opening file")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.ch8")
	err := os.WriteFile(path, data, 0o600)
	assert.NoError(t, err)
	return path
}
