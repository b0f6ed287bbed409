package binding

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// FileStore is a Store backed by a bindings file in any format viper reads.
// Lookups are served from a snapshot that is swapped whole on reload, so
// readers never see a half-loaded file.
type FileStore struct {
	path string
	v    *viper.Viper

	loadMu sync.Mutex
	mu     sync.RWMutex
	values map[string]string
}

// OpenFile loads a bindings file. A missing file gives an empty store.
func OpenFile(path string) (*FileStore, error) {
	v := viper.New()
	v.SetConfigFile(path)

	s := &FileStore{
		path:   path,
		v:      v,
		values: map[string]string{},
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file the store reads.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) GetString(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[strings.ToLower(key)]
	return v, ok
}

// Len returns the number of stored bindings.
func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Reload reads the file again.
func (s *FileStore) Reload() error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("bindings: %s: %w", s.path, err)
		}
		log.Printf("Bindings file %s not found, no key overrides; run with --write-defaults to create one", s.path)
	}
	s.snapshot()
	return nil
}

// Watch reloads the store whenever the file changes. onChange, if not nil, is
// called after each reload.
func (s *FileStore) Watch(onChange func()) {
	s.v.OnConfigChange(func(fsnotify.Event) {
		s.loadMu.Lock()
		s.snapshot()
		s.loadMu.Unlock()
		if onChange != nil {
			onChange()
		}
	})
	s.v.WatchConfig()
}

func (s *FileStore) snapshot() {
	values := make(map[string]string)
	for _, k := range s.v.AllKeys() {
		values[k] = s.v.GetString(k)
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
}
