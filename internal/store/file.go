package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// FileStore persists the key/value map as a single JSON document. Every
// operation re-reads the file, so concurrent processes sharing the path
// see each other's writes on the next request.
type FileStore struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

// Verify interface compliance
var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the JSON file at path. The file
// is created lazily on the first write.
func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{
		path: path,
		log:  log.With().Str("component", "filestore").Logger(),
	}
}

// Get returns the stored value and whether it was present. Read failures
// and corrupt documents report absence.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	v, ok := data[key]
	return v, ok
}

// Set stores the value, rewriting the whole document.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	data[key] = value
	return s.save(data)
}

// Remove deletes the key.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.save(data)
}

// load reads the document, degrading to an empty map on any failure.
func (s *FileStore) load() map[string]string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("Store file unreadable, treating as empty")
		}
		return make(map[string]string)
	}
	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("Store file corrupt, treating as empty")
		return make(map[string]string)
	}
	if data == nil {
		data = make(map[string]string)
	}
	return data
}

func (s *FileStore) save(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0644)
}
