package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// fileStore persists each collection as one JSON file in a directory.
// Writes go through a temp file and a rename so a crash cannot leave a
// half-written collection behind.
type fileStore struct {
	dir string
	mu  sync.Mutex
}

var _ Store = (*fileStore)(nil)

func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating data dir %s", dir)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *fileStore) ReadCollection(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading collection %s", key)
	}
	return data, nil
}

func (s *fileStore) WriteCollection(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "writing collection %s", key)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "writing collection %s", key)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "writing collection %s", key)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), s.path(key)), "writing collection %s", key)
}
