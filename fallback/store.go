package fallback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Store is a key -> JSON file store used only when the remote invoice
// collection is unreachable. One file per key; entries are written once and
// never reconciled back to the remote store.
type Store struct {
	dir string
}

var keyPattern = regexp.MustCompile(`[^\w.\-]`)

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("fallback dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	clean := keyPattern.ReplaceAllString(key, "_")
	return filepath.Join(s.dir, clean+".json")
}

// Put serializes v and writes it under key. The write is atomic so a crash
// mid-write cannot leave a truncated entry.
func (s *Store) Put(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	dst := s.path(key)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Get decodes the entry stored under key into v.
func (s *Store) Get(key string, v any) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Has reports whether an entry exists for key.
func (s *Store) Has(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

// Keys lists stored keys with the given prefix, sorted.
func (s *Store) Keys(prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		key := strings.TrimSuffix(name, ".json")
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
