// Package scenario persists named loan inputs so they can be reloaded and
// compared later.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no scenario has the requested id.
var ErrNotFound = errors.New("scenario not found")

// SavedScenario is a named set of loan inputs.
type SavedScenario struct {
	ID        string            `json:"id" yaml:"id"`
	Name      string            `json:"name" yaml:"name"`
	Inputs    config.LoanInputs `json:"inputs" yaml:"inputs"`
	CreatedAt time.Time         `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt" yaml:"updatedAt"`
}

type fileContents struct {
	Scenarios []SavedScenario `yaml:"scenarios"`
}

// FileStore keeps scenarios in a YAML file. It is safe for concurrent use.
type FileStore struct {
	mu     sync.Mutex
	path   string
	limit  int
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLimit caps the number of stored scenarios.
func WithLimit(limit int) Option {
	return func(s *FileStore) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithClock replaces the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewFileStore creates a store backed by path. The file is created on first save.
func NewFileStore(path string, logger *zap.Logger, opts ...Option) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		path = constants.DefaultScenarioFile
	}
	s := &FileStore{
		path:   path,
		limit:  constants.MaxSavedScenarios,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every saved scenario in storage order.
func (s *FileStore) List() ([]SavedScenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Save stores inputs under name. When existingID names a saved scenario it is
// updated in place; otherwise a new scenario is created, evicting the least
// recently updated one when the store is full. created reports which happened.
func (s *FileStore) Save(name string, inputs config.LoanInputs, existingID string) (saved SavedScenario, created bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SavedScenario{}, false, errors.New("scenario name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scenarios, err := s.read()
	if err != nil {
		return SavedScenario{}, false, err
	}
	now := s.now()

	if existingID != "" {
		for i := range scenarios {
			if scenarios[i].ID != existingID {
				continue
			}
			scenarios[i].Name = name
			scenarios[i].Inputs = inputs
			scenarios[i].UpdatedAt = now
			if err := s.write(scenarios); err != nil {
				return SavedScenario{}, false, err
			}
			s.logger.Debug(fmt.Sprintf("updated scenario %s (%s)", name, existingID),
				zap.String("op", "scenario.Save"),
			)
			return scenarios[i], false, nil
		}
	}

	for len(scenarios) >= s.limit {
		sort.SliceStable(scenarios, func(i, j int) bool {
			return scenarios[i].UpdatedAt.Before(scenarios[j].UpdatedAt)
		})
		s.logger.Info(fmt.Sprintf("scenario limit of %d reached, removing %s", s.limit, scenarios[0].Name),
			zap.String("op", "scenario.Save"),
		)
		scenarios = scenarios[1:]
	}

	saved = SavedScenario{
		ID:        uuid.NewString(),
		Name:      name,
		Inputs:    inputs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	scenarios = append(scenarios, saved)
	if err := s.write(scenarios); err != nil {
		return SavedScenario{}, false, err
	}
	s.logger.Debug(fmt.Sprintf("saved scenario %s (%s)", name, saved.ID),
		zap.String("op", "scenario.Save"),
	)
	return saved, true, nil
}

// Load returns the scenario with the given id.
func (s *FileStore) Load(id string) (SavedScenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenarios, err := s.read()
	if err != nil {
		return SavedScenario{}, err
	}
	for _, scenario := range scenarios {
		if scenario.ID == id {
			return scenario, nil
		}
	}
	return SavedScenario{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes the scenario with the given id.
func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenarios, err := s.read()
	if err != nil {
		return err
	}
	for i, scenario := range scenarios {
		if scenario.ID == id {
			return s.write(append(scenarios[:i], scenarios[i+1:]...))
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Clear removes every saved scenario.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear scenarios: %w", err)
	}
	return nil
}

func (s *FileStore) read() ([]SavedScenario, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []SavedScenario{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios from %s: %w", s.path, err)
	}

	var contents fileContents
	if err := yaml.Unmarshal(data, &contents); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios in %s: %w", s.path, err)
	}
	if contents.Scenarios == nil {
		contents.Scenarios = []SavedScenario{}
	}
	return contents.Scenarios, nil
}

// write replaces the file through a temporary file in the same directory.
func (s *FileStore) write(scenarios []SavedScenario) error {
	data, err := yaml.Marshal(fileContents{Scenarios: scenarios})
	if err != nil {
		return fmt.Errorf("failed to encode scenarios: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create scenario directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".scenarios-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temporary scenario file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write scenarios: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write scenarios: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
