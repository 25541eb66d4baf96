// Package samples bundles legacy demonstration SOPs so the pipeline can
// be tried without hunting for a real document.
package samples

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml docs
var content embed.FS

// Sample describes one bundled legacy document.
type Sample struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	File        string `yaml:"file"`
	Description string `yaml:"description"`
}

type manifest struct {
	Samples []Sample `yaml:"samples"`
}

// List returns all bundled samples in manifest order.
func List() ([]Sample, error) {
	data, err := content.ReadFile("manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return m.Samples, nil
}

// Load returns the sample with the given ID and its raw text.
func Load(id string) (Sample, string, error) {
	all, err := List()
	if err != nil {
		return Sample{}, "", err
	}

	for _, s := range all {
		if s.ID != id {
			continue
		}
		data, err := content.ReadFile("docs/" + s.File)
		if err != nil {
			return Sample{}, "", fmt.Errorf("read sample %s: %w", id, err)
		}
		return s, string(data), nil
	}

	return Sample{}, "", fmt.Errorf("unknown sample %q", id)
}
