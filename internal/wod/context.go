package wod

import "strings"

// Injury returns the user context's injury description, or "" when the key
// is absent, null, or not a string. A whitespace-only injury counts as none.
func Injury(ctx Mapping) string {
	return strings.TrimSpace(Str(ctx, "injury"))
}

// Goals returns the user context's goals in order, or an empty slice when
// the key is absent or malformed.
func Goals(ctx Mapping) []string {
	return StrSlice(ctx, "goals")
}
