package screenshots

import (
	"context"
	"path"
	"path/filepath"

	"github.com/mpavlovs/punchclock/internal/filex"
)

// localURLPrefix is where the HTTP layer serves the local screenshot
// directory from.
const localURLPrefix = "/screenshots"

// LocalStore writes screenshots under a directory on the server host.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the storage directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStore{dir: abs}, nil
}

// Dir returns the absolute storage directory, for static file serving.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(_ context.Context, key string, data []byte) error {
	return filex.WriteFile(filepath.Join(s.dir, filepath.FromSlash(key)), data)
}

func (s *LocalStore) URL(_ context.Context, key string) (string, error) {
	return path.Join(localURLPrefix, key), nil
}
