// Package tutors manages the language tutor personas offered to the writer:
// the built-in set plus custom tutors persisted as YAML.
package tutors

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/shokunin/langotango/pkg/models"
)

const (
	TutorsFile = "tutors.yaml"
)

var (
	ErrTutorNotFound = errors.New("tutor not found")
	ErrBuiltInTutor  = errors.New("built-in tutors cannot be removed")
)

// Registry manages built-in and custom tutors
type Registry struct {
	mu      sync.RWMutex
	builtIn []models.Tutor
	custom  []models.Tutor
	path    string
}

// NewRegistry creates a registry backed by the YAML file at path. A missing
// file yields a registry with only the built-in tutors.
func NewRegistry(path string) (*Registry, error) {
	r := &Registry{
		builtIn: BuiltIn(),
		path:    path,
	}

	if err := r.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r, nil
		}
		return nil, fmt.Errorf("failed to load tutors: %w", err)
	}

	return r, nil
}

// Load reads custom tutors from disk
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return err
	}

	var file models.TutorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse tutors file: %w", err)
	}

	r.custom = r.custom[:0]
	for _, t := range file.Tutors {
		if models.ValidateTutor(t) != nil {
			continue
		}
		t.Name = strings.TrimSpace(t.Name)
		t.BuiltIn = false
		r.custom = append(r.custom, t)
	}
	return nil
}

// Save writes the custom tutors to disk. Built-in tutors are never written.
func (r *Registry) Save() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create tutors directory: %w", err)
	}

	file := models.TutorFile{Tutors: r.custom}
	if file.Tutors == nil {
		file.Tutors = []models.Tutor{}
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal tutors: %w", err)
	}

	tmpFile := r.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write tutors: %w", err)
	}

	if err := os.Rename(tmpFile, r.path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to save tutors: %w", err)
	}

	return nil
}

// Get looks a tutor up by name, ignoring case. Custom tutors shadow
// built-in ones of the same name.
func (r *Registry) Get(name string) (models.Tutor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := normalize(name)
	for _, t := range r.custom {
		if normalize(t.Name) == key {
			return t, true
		}
	}
	for _, t := range r.builtIn {
		if normalize(t.Name) == key {
			return t, true
		}
	}
	return models.Tutor{}, false
}

// Add adds or replaces a custom tutor
func (r *Registry) Add(t models.Tutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := models.ValidateTutor(t); err != nil {
		return fmt.Errorf("invalid tutor: %w", err)
	}
	t.Name = strings.TrimSpace(t.Name)
	t.Prompt = strings.TrimSpace(t.Prompt)
	t.BuiltIn = false

	for i, existing := range r.custom {
		if normalize(existing.Name) == normalize(t.Name) {
			r.custom[i] = t
			return nil
		}
	}
	r.custom = append(r.custom, t)
	return nil
}

// Remove deletes a custom tutor
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalize(name)
	for i, t := range r.custom {
		if normalize(t.Name) == key {
			r.custom = append(r.custom[:i:i], r.custom[i+1:]...)
			return nil
		}
	}
	for _, t := range r.builtIn {
		if normalize(t.Name) == key {
			return ErrBuiltInTutor
		}
	}
	return fmt.Errorf("%w: %s", ErrTutorNotFound, name)
}

// List returns the default tutor first, then the remaining tutors by name.
// Custom tutors replace built-ins of the same name.
func (r *Registry) List(defaultName string) []models.Tutor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byName := make(map[string]models.Tutor, len(r.builtIn)+len(r.custom))
	for _, t := range r.builtIn {
		byName[normalize(t.Name)] = t
	}
	for _, t := range r.custom {
		byName[normalize(t.Name)] = t
	}

	out := make([]models.Tutor, 0, len(byName))
	for _, t := range byName {
		out = append(out, t)
	}
	first := normalize(defaultName)
	sort.Slice(out, func(i, j int) bool {
		a, b := normalize(out[i].Name), normalize(out[j].Name)
		if a == first || b == first {
			return a == first && b != first
		}
		return a < b
	})
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
