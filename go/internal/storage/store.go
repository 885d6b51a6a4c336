package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Collection names persisted by the service.
const (
	Users         = "users"
	Players       = "players"
	Clubs         = "clubs"
	Leagues       = "leagues"
	LeagueLevels  = "league_levels"
	NationalTeams = "national_teams"
	Matches       = "matches"
)

// DefaultCollections lists every collection created on first startup.
var DefaultCollections = []string{Users, Players, Clubs, Leagues, LeagueLevels, NationalTeams, Matches}

// Store owns a directory of collection documents, one JSON array per file.
// Each collection has its own gate; operations on the same collection are
// serialized, operations on different collections are not coordinated.
type Store struct {
	dir string

	mu    sync.Mutex
	gates map[string]*sync.Mutex
}

// Open creates the storage directory if needed and initializes every missing
// collection document as an empty array. Safe to call on an existing directory.
func Open(dir string, collections ...string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	if len(collections) == 0 {
		collections = DefaultCollections
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}

	s := &Store{
		dir:   filepath.Clean(dir),
		gates: make(map[string]*sync.Mutex),
	}

	for _, name := range collections {
		path := s.path(name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat collection %s: %w", name, err)
		}
		if err := writeFileAtomic(path, []byte("[]")); err != nil {
			return nil, fmt.Errorf("failed to initialize collection %s: %w", name, err)
		}
	}

	return s, nil
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// gate returns the mutual-exclusion gate for a collection, creating it on
// first use.
func (s *Store) gate(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gates[name]
	if !ok {
		g = &sync.Mutex{}
		s.gates[name] = g
	}
	return g
}

// writeFileAtomic replaces path with data via a temp file in the same
// directory and a rename, so readers never observe a partial document.
func writeFileAtomic(path string, data []byte) error {
	dir, base := filepath.Split(path)
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// readDocument loads a collection document. A missing or empty file reads as
// an empty collection.
func readDocument[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func writeDocument[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}
