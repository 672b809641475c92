package content

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"pokelearn/internal/models"
)

//go:embed data/bundled.yaml
var bundledYAML []byte

// Dataset is a full, in-memory copy of the quiz content
type Dataset struct {
	Challenges    []models.Challenge    `yaml:"challenges"`
	ChallengeSets []models.ChallengeSet `yaml:"challengeSets"`
}

// ParseDataset decodes a YAML content document
func ParseDataset(raw []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse content dataset: %w", err)
	}
	return &ds, nil
}

// Bundled returns the dataset compiled into the binary
func Bundled() *Dataset {
	ds, err := ParseDataset(bundledYAML)
	if err != nil {
		// The embedded file is fixed at build time.
		panic(err)
	}
	return ds
}

// FetchChallenges lets a Dataset act as a Source
func (d *Dataset) FetchChallenges(ctx context.Context) ([]models.Challenge, error) {
	return d.Challenges, nil
}

// FetchChallengeSets lets a Dataset act as a Source
func (d *Dataset) FetchChallengeSets(ctx context.Context) ([]models.ChallengeSet, error) {
	return d.ChallengeSets, nil
}
