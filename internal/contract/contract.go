package contract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	ErrNotFound  = errors.New("contract: file not found")
	ErrDirectory = errors.New("contract: path is a directory, not a file")
)

// Source is the full text of a contract under audit
type Source struct {
	Path string
	Text string
}

// Resolve returns the absolute path of file relative to dir
func Resolve(dir, file string) (string, error) {
	if filepath.IsAbs(file) {
		return filepath.Clean(file), nil
	}
	abs, err := filepath.Abs(filepath.Join(dir, file))
	if err != nil {
		return "", fmt.Errorf("contract: resolving %q: %w", file, err)
	}
	return abs, nil
}

// Load reads the contract at path, which must be an existing regular file
func Load(path string) (*Source, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("contract: unable to stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectory, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("contract: unable to read %s: %w", path, err)
	}
	return &Source{path, string(data)}, nil
}
