package memory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Document struct {
	Title     string    `yaml:"title"`
	Content   string    `yaml:"content"`
	Category  string    `yaml:"category,omitempty"`
	Embedding []float32 `yaml:"embedding,omitempty,flow"`
}

type documentFile struct {
	Documents []Document `yaml:"documents"`
}

// LoadDocuments reads a YAML file with a top-level "documents" list.
func LoadDocuments(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents file: %w", err)
	}

	var f documentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse documents file: %w", err)
	}

	for i, doc := range f.Documents {
		if len(doc.Title) == 0 {
			return nil, fmt.Errorf("document %d has no title", i)
		}
	}

	return f.Documents, nil
}
