package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// ErrNotLoaded is returned when state is read or written before Load.
var ErrNotLoaded = errors.New("storage not loaded")

type document struct {
	Version int          `json:"version"`
	State   models.State `json:"state"`
}

// JSONStore keeps the state in a single JSON file as {version, state}.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{
		Version: constants.StateVersion,
		State:   models.State{Habits: []models.Habit{}, Logs: map[string][]models.CompletionLog{}},
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > constants.StateVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade the application", doc.Version, constants.StateVersion)
	}
	if doc.State.Logs == nil {
		doc.State.Logs = make(map[string][]models.CompletionLog)
	}

	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) LoadState() (models.State, error) {
	if s.doc == nil {
		return models.State{}, ErrNotLoaded
	}
	return s.doc.State, nil
}

func (s *JSONStore) SaveState(state models.State) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	s.doc.Version = constants.StateVersion
	s.doc.State = state
	return s.save()
}

// save writes to a temp file and renames it over the store.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
