package store

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"venue-console/internal/observability"
)

// SecureStorage persists small key/value records in a single obfuscated file.
// Values are base64-encoded JSON: reversible obfuscation against casual
// inspection, deliberately not encryption.
//
// Storage failures never propagate to callers. When the file cannot be read
// or written the storage degrades to memory-only operation and Available
// reports false for diagnostics.
type SecureStorage struct {
	mu        sync.Mutex
	path      string
	available bool
	cache     map[string]string
}

// NewSecureStorage opens (or creates) the storage file at path. The file is
// read once here; all subsequent reads are served from memory.
func NewSecureStorage(path string) *SecureStorage {
	s := &SecureStorage{
		path:  path,
		cache: make(map[string]string),
	}
	s.available = s.load()
	if s.available {
		observability.SecureStorageAvailable.Set(1)
	} else {
		observability.SecureStorageAvailable.Set(0)
	}
	return s
}

// load reads the persisted records and probes writability. Corrupted files
// are discarded rather than surfaced.
func (s *SecureStorage) load() bool {
	if s.path == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		observability.Warn("session storage unavailable, using memory only",
			"path", s.path, "error", err.Error())
		return false
	}

	data, err := os.ReadFile(s.path)
	if err == nil && len(data) > 0 {
		var raw map[string]string
		if jsonErr := json.Unmarshal(data, &raw); jsonErr == nil {
			s.cache = raw
		} else {
			observability.Warn("discarding corrupted session storage file", "path", s.path)
			_ = os.Remove(s.path)
		}
	}

	// Probe writability so later Set calls can degrade silently.
	if err := s.flushLocked(); err != nil {
		observability.Warn("session storage not writable, using memory only",
			"path", s.path, "error", err.Error())
		return false
	}
	return true
}

// Set stores value under key, JSON-encoded and obfuscated. The in-memory
// cache is always updated; the file write is best-effort.
func (s *SecureStorage) Set(key string, value any) {
	encoded, err := json.Marshal(value)
	if err != nil {
		observability.Warn("failed to encode storage value", "key", key, "error", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = base64.StdEncoding.EncodeToString(encoded)
	s.persistLocked()
}

// Get decodes the value stored under key into out. It returns false when the
// key is absent or the stored value cannot be decoded; corrupted entries are
// removed.
func (s *SecureStorage) Get(key string, out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, ok := s.cache[key]
	if !ok {
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err == nil {
		err = json.Unmarshal(raw, out)
	}
	if err != nil {
		observability.Warn("removing corrupted storage entry", "key", key)
		delete(s.cache, key)
		s.persistLocked()
		return false
	}
	return true
}

// Remove deletes the record stored under key.
func (s *SecureStorage) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cache[key]; !ok {
		return
	}
	delete(s.cache, key)
	s.persistLocked()
}

// Clear deletes every record.
func (s *SecureStorage) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]string)
	s.persistLocked()
}

// Available reports whether the on-disk file is usable. False means the
// storage is operating memory-only for this process.
func (s *SecureStorage) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

func (s *SecureStorage) persistLocked() {
	if !s.available {
		return
	}
	if err := s.flushLocked(); err != nil {
		observability.Warn("session storage write failed, degrading to memory only",
			"path", s.path, "error", err.Error())
		s.available = false
		observability.SecureStorageAvailable.Set(0)
	}
}

func (s *SecureStorage) flushLocked() error {
	data, err := json.Marshal(s.cache)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
