// Package upload validates incoming image uploads and handles their
// short-lived persistence on disk. Files never outlive the request that
// carried them.
package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/example/lifescan/internal/scan"
)

// allowedExtensions is the upload allow-list. Validation is by filename
// suffix only; there is no content sniffing, so a spoofed name passes.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"webp": true,
	"bmp":  true,
	"gif":  true,
}

// Validate checks the declared filename against the extension allow-list
// and rejects empty payloads. Empty payloads are rejected regardless of
// the filename.
func Validate(filename string, data []byte) error {
	if !allowedFilename(filename) {
		return fmt.Errorf("%w: %q", scan.ErrUnsupportedFileType, filename)
	}
	if len(data) == 0 {
		return scan.ErrEmptyFile
	}
	return nil
}

func allowedFilename(filename string) bool {
	if filename == "" {
		return false
	}
	ext := filepath.Ext(filename)
	if ext == "" {
		return false
	}
	return allowedExtensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// Store persists uploads into a scratch directory under randomized
// names so concurrent requests cannot collide.
type Store struct {
	dir string
}

// NewStore creates the scratch directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the upload to disk and returns its path. Callers must
// Remove the file when the request completes, on every exit path.
func (s *Store) Save(filename string, data []byte) (string, error) {
	name := uuid.NewString() + "_" + filepath.Base(filename)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return path, nil
}

// Remove deletes a saved upload. Missing files are not an error; cleanup
// runs unconditionally in deferred paths.
func (s *Store) Remove(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
