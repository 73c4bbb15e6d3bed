package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Voice describes one TTS voice available to the authoring side.
type Voice struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Rate        float64 `yaml:"rate,omitempty"`
}

// VoiceCatalog maps content kinds to voices. Sections and quiz questions are
// narrated by different voices so the quiz is audibly distinct from lessons.
type VoiceCatalog struct {
	Default string  `yaml:"default"`
	Quiz    string  `yaml:"quiz,omitempty"`
	Voices  []Voice `yaml:"voices"`
}

// LoadVoiceCatalog reads the YAML voice catalog at path.
func LoadVoiceCatalog(path string) (*VoiceCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read voice catalog: %w", err)
	}

	var cat VoiceCatalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse voice catalog: %w", err)
	}
	if cat.Default == "" && len(cat.Voices) > 0 {
		cat.Default = cat.Voices[0].ID
	}
	return &cat, nil
}

// Resolve returns the voice ID for the given kind ("quiz" or anything else),
// honoring an explicit override first.
func (c *VoiceCatalog) Resolve(kind, override string) string {
	if override != "" {
		return override
	}
	if kind == "quiz" && c.Quiz != "" {
		return c.Quiz
	}
	return c.Default
}

// GetEnvOrDefault returns the environment variable value, or def when unset.
func GetEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
