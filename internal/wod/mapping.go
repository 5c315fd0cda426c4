// Package wod holds the schema-free data model shared by the pipeline
// stages: workout mappings, movement lists, and user context. Stage shapes
// are deliberately not fixed by structs; accessors here tolerate missing
// keys and wrong types instead of failing.
package wod

// Mapping is the object every pipeline stage produces and consumes.
type Mapping = map[string]any

// Str returns the string value at key, or "" when the key is absent or not
// a string.
func Str(m Mapping, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// Map returns the nested mapping at key, or nil when the key is absent or
// not a mapping.
func Map(m Mapping, key string) Mapping {
	if m == nil {
		return nil
	}
	nested, _ := m[key].(map[string]any)
	return nested
}

// Slice returns the sequence at key, or nil when the key is absent or not a
// sequence.
func Slice(m Mapping, key string) []any {
	if m == nil {
		return nil
	}
	s, _ := m[key].([]any)
	return s
}

// StrSlice returns the string elements of the sequence at key. Non-string
// elements are skipped. Both []string and []any values are accepted since
// callers mix decoded JSON with directly constructed contexts.
func StrSlice(m Mapping, key string) []string {
	if m == nil {
		return nil
	}
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Clone deep-copies a mapping, descending into nested mappings and
// sequences. Scalars are shared (they are immutable).
func Clone(m Mapping) Mapping {
	if m == nil {
		return nil
	}
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Clone(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

// NormalizeValue rewrites map[any]any trees (as produced by some YAML
// decoders) into map[string]any trees so downstream code sees one shape.
// Non-string keys are rendered out of the mapping.
func NormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(Mapping, len(t))
		for k, e := range t {
			out[k] = NormalizeValue(e)
		}
		return out
	case map[any]any:
		out := make(Mapping, len(t))
		for k, e := range t {
			if ks, ok := k.(string); ok {
				out[ks] = NormalizeValue(e)
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = NormalizeValue(e)
		}
		return out
	default:
		return v
	}
}
