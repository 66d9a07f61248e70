package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeInstanceFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "instance.json")
	assert.Nil(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInstanceFromJson(t *testing.T) {
	t.Run("Slots derived from day and time", func(t *testing.T) {
		path := writeInstanceFile(t, `{
			"disciplines": [
				{
					"id": "MAT101",
					"name": "Cálculo I",
					"day": "Segunda",
					"time": "19h00-20h50",
					"enrollment": 60,
					"teachers": ["Ana", "Bruno"],
					"splitAuthorized": true,
					"minSplitTeachers": 2
				}
			],
			"rooms": [
				{"id": "S201", "capacity": 80, "floor": 2}
			],
			"occupancyCeiling": 1.2,
			"splitThreshold": 50
		}`)

		instance, err := InstanceFromJson(path)

		assert.Nil(t, err)
		assert.Len(t, instance.Disciplines, 1)
		assert.Equal(t, []int{2, 3}, instance.Disciplines[0].Slots)
		// Unset floor weight defaults to the neutral multiplier
		assert.Equal(t, 1.0, instance.Disciplines[0].FloorWeight)
		assert.Equal(t, 1.2, instance.OccupancyCeiling)
		assert.Equal(t, 50, instance.SplitThreshold)
	})

	t.Run("Explicit slots skip the grid", func(t *testing.T) {
		path := writeInstanceFile(t, `{
			"disciplines": [
				{"id": "FIS202", "enrollment": 20, "slots": [40, 41]}
			],
			"rooms": [{"id": "L101", "lab": true, "capacity": 40, "floor": 1}]
		}`)

		instance, err := InstanceFromJson(path)

		assert.Nil(t, err)
		assert.Equal(t, []int{40, 41}, instance.Disciplines[0].Slots)
	})

	t.Run("Unknown day fails with the discipline named", func(t *testing.T) {
		path := writeInstanceFile(t, `{
			"disciplines": [
				{"id": "MAT101", "day": "Domingo", "time": "17h20-18h10", "enrollment": 10}
			],
			"rooms": []
		}`)

		_, err := InstanceFromJson(path)

		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "MAT101")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := InstanceFromJson(filepath.Join(t.TempDir(), "nope.json"))

		assert.NotNil(t, err)
	})

	t.Run("Malformed json", func(t *testing.T) {
		path := writeInstanceFile(t, `{"disciplines": [`)

		_, err := InstanceFromJson(path)

		assert.NotNil(t, err)
	})
}

func TestInstanceValidate(t *testing.T) {
	base := Instance{
		OccupancyCeiling: 1.2,
		SplitThreshold:   50,
		Weights:          DefaultWeights(),
	}

	t.Run("Valid instance passes", func(t *testing.T) {
		assert.Nil(t, base.Validate())
	})

	t.Run("Non-positive ceiling", func(t *testing.T) {
		instance := base
		instance.OccupancyCeiling = 0

		var configErr ConfigError
		assert.ErrorAs(t, instance.Validate(), &configErr)
		assert.Equal(t, "occupancyCeiling", configErr.Field)
	})

	t.Run("Zero split threshold", func(t *testing.T) {
		instance := base
		instance.SplitThreshold = 0

		var configErr ConfigError
		assert.ErrorAs(t, instance.Validate(), &configErr)
	})

	t.Run("Negative weight", func(t *testing.T) {
		instance := base
		instance.Weights.LabViolation = -1

		var configErr ConfigError
		assert.ErrorAs(t, instance.Validate(), &configErr)
		assert.Equal(t, "labViolation", configErr.Field)
	})
}
