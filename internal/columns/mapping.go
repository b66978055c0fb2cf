package columns

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mapping is the caller-owned correspondence from canonical roles to actual
// column names, one role map per side. A nil Mapping means fully automatic
// resolution from the synonym table.
type Mapping struct {
	Mail map[string]string `yaml:"mail" json:"mail"`
	CRM  map[string]string `yaml:"crm" json:"crm"`
}

// Side returns the role map for "mail" or "crm". Unknown sides and nil
// mappings return nil, which resolves as "no override".
func (m *Mapping) Side(side string) map[string]string {
	if m == nil {
		return nil
	}
	switch side {
	case "mail":
		return m.Mail
	case "crm":
		return m.CRM
	}
	return nil
}

// LoadMappingFile reads a saved Mapping from a YAML file. The file is the
// persistence format the mapper UI writes between runs.
func LoadMappingFile(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}

	var mapping Mapping
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}

	return &mapping, nil
}

// SaveMappingFile writes a Mapping back out as YAML.
func SaveMappingFile(path string, mapping *Mapping) error {
	data, err := yaml.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file: %w", err)
	}
	return nil
}
