package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ems/internal/platform/crypto"
)

// Store is a file-backed key-value store, the durable-client-storage
// collaborator. Multi-key writes are atomic: the whole map is re-marshalled
// and renamed into place, so paired keys are never persisted one without the
// other.
type Store struct {
	mu     sync.Mutex
	path   string
	sealer *crypto.Sealer
	values map[string]json.RawMessage
}

// Open loads the store at path, creating parent directories as needed. A
// missing file is an empty store; a corrupt file is reported, not silently
// reset.
func Open(path string) (*Store, error) {
	return OpenSealed(path, "")
}

// OpenSealed is Open with the file encrypted at rest under key. A plain
// file written before the key was configured is still readable; it becomes
// sealed on the next write.
func OpenSealed(path, key string) (*Store, error) {
	sealer, err := crypto.NewSealer(key)
	if err != nil {
		return nil, fmt.Errorf("storage key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("storage dir: %w", err)
	}

	s := &Store{path: path, sealer: sealer, values: map[string]json.RawMessage{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage read: %w", err)
	}
	if len(data) > 0 && sealer.Configured() {
		opened, err := sealer.Open(data)
		switch {
		case err == nil:
			data = opened
		case data[0] == '{':
			// Plain file from before the key was configured.
		default:
			return nil, fmt.Errorf("storage unseal: %w", err)
		}
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, fmt.Errorf("storage parse: %w", err)
		}
	}
	return s, nil
}

// Get unmarshals the value under key into out, reporting whether the key
// exists.
func (s *Store) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("storage value %q: %w", key, err)
	}
	return true, nil
}

// PutAll writes every pair in one durable operation.
func (s *Store) PutAll(pairs map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make(map[string]json.RawMessage, len(s.values)+len(pairs))
	for k, v := range s.values {
		staged[k] = v
	}
	for k, v := range pairs {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("storage marshal %q: %w", k, err)
		}
		staged[k] = raw
	}

	if err := s.flush(staged); err != nil {
		return err
	}
	s.values = staged
	return nil
}

// DeleteAll removes every named key in one durable operation. Missing keys
// are ignored.
func (s *Store) DeleteAll(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make(map[string]json.RawMessage, len(s.values))
	for k, v := range s.values {
		staged[k] = v
	}
	for _, k := range keys {
		delete(staged, k)
	}

	if err := s.flush(staged); err != nil {
		return err
	}
	s.values = staged
	return nil
}

// flush writes the staged map to a temp file and renames it over the store
// file. Caller holds the lock.
func (s *Store) flush(staged map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(staged, "", "  ")
	if err != nil {
		return fmt.Errorf("storage marshal: %w", err)
	}
	if data, err = s.sealer.Seal(data); err != nil {
		return fmt.Errorf("storage seal: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("storage write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage rename: %w", err)
	}
	return nil
}
