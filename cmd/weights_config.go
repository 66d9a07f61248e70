package cmd

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/edusched/roomalloc/internal/model"
)

// weightsConfig mirrors the weights YAML file.
type weightsConfig struct {
	FloorPreference  float64 `yaml:"floor_preference"`
	LabViolation     float64 `yaml:"lab_violation"`
	RegularViolation float64 `yaml:"regular_violation"`
	FloorDistance    float64 `yaml:"floor_distance"`
	CapacityExcess   float64 `yaml:"capacity_excess"`
}

// LoadWeights reads the five penalty weights from a YAML file.
func LoadWeights(path string) (model.Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Weights{}, err
	}

	var cfg weightsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.Weights{}, err
	}

	return model.Weights{
		FloorPreference:  cfg.FloorPreference,
		LabViolation:     cfg.LabViolation,
		RegularViolation: cfg.RegularViolation,
		FloorDistance:    cfg.FloorDistance,
		CapacityExcess:   cfg.CapacityExcess,
	}, nil
}
