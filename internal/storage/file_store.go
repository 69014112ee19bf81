package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"emojidb/internal/providers"
	"emojidb/internal/storage/interfaces"
	"emojidb/internal/structures"

	"github.com/spf13/afero"
)

var ErrInvalidKey = errors.New("invalid cache key")

// FileStore keeps one file per cache key under dir. Writes go through a
// temporary file and a rename; old artifacts are left in place.
type FileStore struct {
	fs     afero.Fs
	dir    string
	logger providers.Logger
}

func NewFileStore(fs afero.Fs, dir string, logger providers.Logger) *FileStore {
	return &FileStore{fs: fs, dir: dir, logger: logger}
}

func NewFileStoreFromConfig(conf *structures.Config, fs afero.Fs, logger providers.Logger) *FileStore {
	return NewFileStore(fs, conf.Cache.Dir, logger)
}

func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *FileStore) Get(key string) ([]byte, bool) {
	if !validKey(key) {
		return nil, false
	}
	path := s.Path(key)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Errorf(providers.TypeCache, "Failed to read cache file %s: %s", path, err)
		}
		return nil, false
	}
	return data, true
}

func (s *FileStore) Put(key string, blob []byte) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	path := s.Path(key)
	tmpFile := path + ".tmp"
	file, err := s.fs.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(blob); err != nil {
		file.Close()
		s.fs.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		s.fs.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		s.fs.Remove(tmpFile)
		return err
	}

	return s.fs.Rename(tmpFile, path)
}

func validKey(key string) bool {
	return key != "" && key != "." && key != ".." && !strings.ContainsAny(key, `/\`)
}

// NewCacheStore stacks the optional memory tier and the hit/miss counters on
// top of the file store.
func NewCacheStore(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, fileStore *FileStore) interfaces.CacheStoreInterface {
	return providers.NewInstrumentedCacheProvider(conf, logger, metrics, fileStore)
}
