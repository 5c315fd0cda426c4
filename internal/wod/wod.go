package wod

// Movements returns the movement mappings under a workout's "movements"
// key, in order. Entries that are not mappings are skipped. The returned
// maps alias the input, so mutating them mutates the workout.
func Movements(workout Mapping) []Mapping {
	raw := Slice(workout, "movements")
	if raw == nil {
		return nil
	}
	out := make([]Mapping, 0, len(raw))
	for _, e := range raw {
		if mv, ok := e.(map[string]any); ok {
			out = append(out, mv)
		}
	}
	return out
}

// ExerciseName returns a movement's exercise name, or "" when absent.
func ExerciseName(movement Mapping) string {
	return Str(movement, "exercise")
}

// MovementNames returns the exercise names of a workout's movements, in
// order, skipping unnamed entries.
func MovementNames(workout Mapping) []string {
	movements := Movements(workout)
	out := make([]string, 0, len(movements))
	for _, mv := range movements {
		if name := ExerciseName(mv); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// HasMovement reports whether any movement in the workout carries the given
// exercise name.
func HasMovement(workout Mapping, exercise string) bool {
	for _, mv := range Movements(workout) {
		if ExerciseName(mv) == exercise {
			return true
		}
	}
	return false
}
