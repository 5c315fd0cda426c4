package wod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func benchmarkWOD() Mapping {
	return Mapping{
		"name": "Fran",
		"type": "21-15-9 For Time",
		"movements": []any{
			map[string]any{"exercise": "Thruster", "reps": 21},
			map[string]any{"exercise": "Pull-up", "reps": 21},
			"not a movement",
		},
	}
}

func TestMovements_SkipsNonMappings(t *testing.T) {
	movements := Movements(benchmarkWOD())
	require.Len(t, movements, 2)
	assert.Equal(t, "Thruster", ExerciseName(movements[0]))
	assert.Equal(t, "Pull-up", ExerciseName(movements[1]))
}

func TestMovements_MissingOrMalformed(t *testing.T) {
	assert.Nil(t, Movements(Mapping{}))
	assert.Nil(t, Movements(Mapping{"movements": "none"}))
	assert.Nil(t, Movements(nil))
}

func TestMovements_AliasesParent(t *testing.T) {
	workout := benchmarkWOD()
	Movements(workout)[0]["scaled"] = map[string]any{"exercise": "Front Squat"}

	again := Movements(workout)
	assert.NotNil(t, again[0]["scaled"])
}

func TestMovementNames_OrderedAndFiltered(t *testing.T) {
	workout := benchmarkWOD()
	workout["movements"] = append(workout["movements"].([]any),
		map[string]any{"reps": 10}) // unnamed

	assert.Equal(t, []string{"Thruster", "Pull-up"}, MovementNames(workout))
}

func TestHasMovement(t *testing.T) {
	workout := benchmarkWOD()
	assert.True(t, HasMovement(workout, "Thruster"))
	assert.False(t, HasMovement(workout, "Burpee"))
	assert.False(t, HasMovement(Mapping{}, "Thruster"))
}
