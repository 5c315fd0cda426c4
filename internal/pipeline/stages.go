package pipeline

import (
	"github.com/alexanderramin/wodforge/internal/llm"
	"github.com/alexanderramin/wodforge/internal/wod"
)

var intentSignature = Signature{
	Name:         "intent",
	Instructions: intentInstructions,
	Inputs: []Field{
		{Name: "request", Desc: "the user's free-text training request"},
	},
	Outputs: []Field{
		{Name: "intent", Desc: "normalized training intent (type, duration, style)"},
	},
}

var architectSignature = Signature{
	Name:         "architect",
	Instructions: architectInstructions,
	Inputs: []Field{
		{Name: "request", Desc: "the user's free-text training request"},
		{Name: "intent", Desc: "normalized training intent; may be empty"},
	},
	Outputs: []Field{
		{Name: "base_wod", Desc: "workout with name, type, and ordered movements"},
	},
}

var annotateSignature = Signature{
	Name:         "annotate",
	Instructions: annotateInstructions,
	Inputs: []Field{
		{Name: "base_wod", Desc: "workout to annotate, movements in final order"},
		{Name: "context", Desc: "user context; injury drives substitutions"},
	},
	Outputs: []Field{
		{Name: "annotated_wod", Desc: "base workout with scaled, rx_plus, and conditional injury_alts per movement"},
	},
}

var optimizeSignature = Signature{
	Name:         "optimize",
	Instructions: optimizeInstructions,
	Inputs: []Field{
		{Name: "annotated_wod", Desc: "annotated workout to wrap, returned unchanged inside the plan"},
		{Name: "context", Desc: "user context; goals drive accessory choice"},
	},
	Outputs: []Field{
		{Name: "plan", Desc: "full session: warmup, wod, cooldown, exactly 2 accessories"},
	},
}

// Contracts returns the four stage contracts in pipeline order.
func Contracts() []Signature {
	return []Signature{intentSignature, architectSignature, annotateSignature, optimizeSignature}
}

// Modes maps each stage name to its generation mode.
func Modes() map[string]Mode {
	return map[string]Mode{
		intentSignature.Name:    ModeDirect,
		architectSignature.Name: ModeDirect,
		annotateSignature.Name:  ModeReasoning,
		optimizeSignature.Name:  ModeReasoning,
	}
}

// NewIntentNormalizer builds the stage that turns the raw request into a
// structured training intent.
func NewIntentNormalizer(client llm.Client) *Stage {
	return &Stage{sig: intentSignature, mode: ModeDirect, task: llm.TaskIntent, client: client}
}

// NewWorkoutArchitect builds the stage that designs the base workout from
// the request and the intent.
func NewWorkoutArchitect(client llm.Client) *Stage {
	return &Stage{sig: architectSignature, mode: ModeDirect, task: llm.TaskArchitect, client: client}
}

// NewScalingAnnotator builds the reasoning stage that adds scaled and
// rx_plus variants, plus injury substitutions, to every movement.
func NewScalingAnnotator(client llm.Client) *Stage {
	return &Stage{
		sig:     annotateSignature,
		mode:    ModeReasoning,
		task:    llm.TaskAnnotate,
		client:  client,
		enforce: enforceAnnotations,
	}
}

// NewPerformanceOptimizer builds the reasoning stage that wraps the
// annotated workout with a warmup, a cooldown, and accessory sessions.
func NewPerformanceOptimizer(client llm.Client) *Stage {
	return &Stage{
		sig:     optimizeSignature,
		mode:    ModeReasoning,
		task:    llm.TaskOptimize,
		client:  client,
		enforce: enforcePlan,
	}
}

// enforceAnnotations reinstates base movements the model dropped and strips
// injury substitutions when no injury was stated. Hard guard, enforced
// regardless of what the model claimed to do. An empty output stays empty.
func enforceAnnotations(inputs map[string]any, out wod.Mapping) wod.Mapping {
	if len(out) == 0 {
		return out
	}
	base, _ := inputs["base_wod"].(map[string]any)
	reinstateMovements(base, out)
	userCtx, _ := inputs["context"].(map[string]any)
	if wod.Injury(userCtx) == "" {
		stripInjuryAlts(out)
	}
	return out
}

// reinstateMovements appends a deep copy of every base movement whose
// exercise name is missing from out. Copies keep out free of aliases into
// the previous stage's output.
func reinstateMovements(base, out wod.Mapping) {
	have := make(map[string]bool)
	for _, m := range wod.Movements(out) {
		have[wod.ExerciseName(m)] = true
	}
	var missing []any
	for _, m := range wod.Movements(base) {
		if name := wod.ExerciseName(m); name != "" && !have[name] {
			missing = append(missing, wod.Clone(m))
		}
	}
	if len(missing) == 0 {
		return
	}
	out["movements"] = append(wod.Slice(out, "movements"), missing...)
}

// stripInjuryAlts removes injury_alts from every movement and from its
// scaled and rx_plus variants.
func stripInjuryAlts(out wod.Mapping) {
	for _, m := range wod.Movements(out) {
		delete(m, "injury_alts")
		for _, key := range []string{"scaled", "rx_plus"} {
			if variant := wod.Map(m, key); variant != nil {
				delete(variant, "injury_alts")
			}
		}
	}
}

// enforcePlan pins the plan's wod field to a deep copy of the annotated
// workout the stage was given. The optimizer wraps the workout; it never
// edits it. An empty output stays empty.
func enforcePlan(inputs map[string]any, out wod.Mapping) wod.Mapping {
	if len(out) == 0 {
		return out
	}
	annotated, _ := inputs["annotated_wod"].(map[string]any)
	pinned := wod.Clone(annotated)
	if pinned == nil {
		pinned = wod.Mapping{}
	}
	out["wod"] = pinned
	return out
}
