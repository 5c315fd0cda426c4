package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Field is one named value in a stage contract.
type Field struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// Signature declares what a stage consumes and produces. Prompts are
// rendered from it, so the contract shown by `wodforge stages` is the
// contract the model actually sees.
type Signature struct {
	Name         string  `json:"name"`
	Instructions string  `json:"instructions"`
	Inputs       []Field `json:"inputs"`
	Outputs      []Field `json:"outputs"`
}

// SystemPrompt renders the instructions, the field contract, and the
// output-format rules for the given mode.
func (s Signature) SystemPrompt(mode Mode) string {
	var b strings.Builder
	b.WriteString(s.Instructions)
	b.WriteString("\n\n[INPUT]\n")
	for _, f := range s.Inputs {
		fmt.Fprintf(&b, "- %s: %s\n", f.Name, f.Desc)
	}
	b.WriteString("\n[OUTPUT]\n")
	for _, f := range s.Outputs {
		fmt.Fprintf(&b, "- %s: %s\n", f.Name, f.Desc)
	}
	b.WriteString("\n")
	if mode == ModeReasoning {
		b.WriteString(reasoningFormatRules)
	} else {
		b.WriteString(directFormatRules)
	}
	return b.String()
}

// UserPrompt renders the declared input fields with their values, in
// contract order. Strings pass through verbatim; everything else is
// serialized as indented JSON. A missing value renders as null so the model
// still sees every declared field.
func (s Signature) UserPrompt(values map[string]any) string {
	var b strings.Builder
	for i, f := range s.Inputs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n%s\n", f.Name, renderValue(values[f.Name]))
	}
	return b.String()
}

func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	default:
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}
