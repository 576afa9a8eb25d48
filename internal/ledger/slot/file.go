// Package slot provides the durable stores a ledger.Store reads from and writes to.
// Every driver keeps the whole data set as one document under one key.
package slot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

// File keeps the document in <dir>/<key>.json.
type File struct {
	path string
}

func NewFile(dir, key string) *File {
	return &File{path: filepath.Join(dir, key+".json")}
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Read(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ledger.ErrSlotEmpty
	}

	if err != nil {
		return nil, fmt.Errorf("read slot file: %w", err)
	}

	return b, nil
}

// Write replaces the file atomically so a crash never leaves a half-written document.
func (f *File) Write(_ context.Context, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create slot directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp slot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write slot file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close slot file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace slot file: %w", err)
	}

	return nil
}
