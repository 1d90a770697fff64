package verb

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Verbs []Verb `yaml:"verbs"`
}

// LoadCatalog reads verb definitions from a YAML file.
func LoadCatalog(path string) ([]Verb, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read verb catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses a YAML verb catalog document.
func ParseCatalog(data []byte) ([]Verb, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse verb catalog: %w", err)
	}
	return file.Verbs, nil
}
