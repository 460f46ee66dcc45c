package core

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Preset is the persisted form of a species parameter record.
type Preset struct {
	Name        string    `json:"name"`
	R           float64   `json:"R"`
	T           float64   `json:"T"`
	Mu          float64   `json:"mu"`
	Sigma       float64   `json:"sigma"`
	Description string    `json:"description,omitempty"`
	Created     time.Time `json:"created"`
}

// Params converts the preset into a runtime parameter record.
func (p Preset) Params() Params {
	return Params{R: p.R, T: p.T, Mu: p.Mu, Sigma: p.Sigma}
}

// PresetStore maps string ids to presets and round-trips them as JSON.
type PresetStore struct {
	presets map[string]Preset
}

// NewPresetStore returns an empty store.
func NewPresetStore() *PresetStore {
	return &PresetStore{presets: make(map[string]Preset)}
}

// Put validates and stores a preset under the given id.
func (s *PresetStore) Put(id string, p Preset) error {
	if id == "" {
		return fmt.Errorf("preset: empty id")
	}
	if err := p.Params().Validate(); err != nil {
		return err
	}
	if p.Created.IsZero() {
		p.Created = time.Now().UTC()
	}
	s.presets[id] = p
	return nil
}

// Get looks up a preset by id.
func (s *PresetStore) Get(id string) (Preset, bool) {
	p, ok := s.presets[id]
	return p, ok
}

// Len reports the number of stored presets.
func (s *PresetStore) Len() int { return len(s.presets) }

// Import merges a JSON mapping into the store. Entries with matching ids are
// overwritten by the imported ones; everything else is kept.
func (s *PresetStore) Import(data []byte) error {
	var incoming map[string]Preset
	if err := json.Unmarshal(data, &incoming); err != nil {
		return fmt.Errorf("preset: parsing import: %w", err)
	}
	for id, p := range incoming {
		if err := s.Put(id, p); err != nil {
			return fmt.Errorf("preset %q: %w", id, err)
		}
	}
	return nil
}

// Export emits the full mapping as indented JSON.
func (s *PresetStore) Export() ([]byte, error) {
	data, err := json.MarshalIndent(s.presets, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("preset: marshaling export: %w", err)
	}
	return data, nil
}

// LoadFile imports presets from a JSON file. A missing file is not an error;
// the store simply stays as it was.
func (s *PresetStore) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("preset: reading %s: %w", path, err)
	}
	return s.Import(data)
}

// SaveFile exports the store to a JSON file.
func (s *PresetStore) SaveFile(path string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("preset: writing %s: %w", path, err)
	}
	return nil
}

// Merge copies every preset into the registry as a species, overwriting
// matching ids.
func (s *PresetStore) Merge(reg *Registry) error {
	for id, p := range s.presets {
		sp := Species{Name: p.Name, Description: p.Description, Params: p.Params()}
		if err := reg.Upsert(id, sp); err != nil {
			return err
		}
	}
	return nil
}
