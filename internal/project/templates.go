package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/panelforge/panelcut/internal/model"
)

// CabinetTemplate is a reusable cabinet preset. Applying it stamps the
// stored configuration with a new name.
type CabinetTemplate struct {
	Name    string        `json:"name"`
	Cabinet model.Cabinet `json:"cabinet"`
}

// TemplateStore holds the saved cabinet templates.
type TemplateStore struct {
	Templates []CabinetTemplate `json:"templates"`
}

// Apply returns the template's cabinet renamed for a concrete job.
func (t CabinetTemplate) Apply(name string) model.Cabinet {
	c := t.Cabinet
	c.Name = name
	return c
}

// Add inserts a template, replacing any existing one with the same name.
func (s *TemplateStore) Add(tpl CabinetTemplate) {
	for i, existing := range s.Templates {
		if existing.Name == tpl.Name {
			s.Templates[i] = tpl
			return
		}
	}
	s.Templates = append(s.Templates, tpl)
}

// Find looks a template up by name.
func (s TemplateStore) Find(name string) (CabinetTemplate, bool) {
	for _, tpl := range s.Templates {
		if tpl.Name == name {
			return tpl, true
		}
	}
	return CabinetTemplate{}, false
}

// DefaultTemplatePath returns the default file path for the template store.
// This is located at ~/.panelcut/templates.json.
func DefaultTemplatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".panelcut", "templates.json"), nil
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store TemplateStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTemplates reads a template store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadTemplates(path string) (TemplateStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return TemplateStore{Templates: []CabinetTemplate{}}, nil
		}
		return TemplateStore{}, err
	}
	var store TemplateStore
	if err := json.Unmarshal(data, &store); err != nil {
		return TemplateStore{}, fmt.Errorf("parse template store: %w", err)
	}
	if store.Templates == nil {
		store.Templates = []CabinetTemplate{}
	}
	return store, nil
}
