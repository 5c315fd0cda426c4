package formatter

import (
	"testing"

	"github.com/alexanderramin/wodforge/internal/pipeline"
	"github.com/alexanderramin/wodforge/internal/wod"
	"github.com/stretchr/testify/assert"
)

func sampleResult() *pipeline.Result {
	annotated := wod.Mapping{
		"name": "Engine Room",
		"type": "AMRAP 20",
		"movements": []any{
			map[string]any{
				"exercise": "Kettlebell Swing",
				"reps":     float64(15),
				"scaled":   map[string]any{"exercise": "Kettlebell Swing", "reps": float64(10)},
				"rx_plus":  map[string]any{"exercise": "Kettlebell Swing", "reps": float64(20)},
			},
			map[string]any{
				"exercise": "Run",
				"time":     "200m",
				"scaled":   map[string]any{"exercise": "Run", "time": "100m"},
				"rx_plus":  map[string]any{"exercise": "Run", "time": "400m"},
			},
		},
	}

	return &pipeline.Result{
		RunID:        "4f9cfe73-2d09-4a45-9df5-a7c6f40f9472",
		Intent:       wod.Mapping{"type": "amrap", "duration": float64(20), "style": "conditioning"},
		BaseWOD:      wod.Clone(annotated),
		AnnotatedWOD: annotated,
		Plan: wod.Mapping{
			"warmup": map[string]any{
				"duration":  "10 min",
				"exercises": []any{"Jumping Jacks", "Air Squat"},
			},
			"wod": wod.Clone(annotated),
			"cooldown": map[string]any{
				"duration":  "5 min",
				"exercises": []any{"Couch Stretch"},
			},
			"accessories": []any{
				map[string]any{"name": "Midline Circuit", "duration": "12 min", "details": "3 rounds: plank, hollow hold"},
				map[string]any{"name": "Posterior Chain", "duration": "10 min", "exercises": []any{
					map[string]any{"exercise": "Good Morning", "reps": float64(12)},
				}},
			},
		},
		Stages: []pipeline.StageTrace{
			{Stage: "intent", Mode: pipeline.ModeDirect},
			{Stage: "architect", Mode: pipeline.ModeDirect},
			{Stage: "annotate", Mode: pipeline.ModeReasoning},
			{Stage: "optimize", Mode: pipeline.ModeReasoning},
		},
	}
}

func TestFormatPlan_RendersAllSections(t *testing.T) {
	out := FormatPlan(sampleResult())

	assert.Contains(t, out, "SESSION PLAN")
	assert.Contains(t, out, "INTENT: AMRAP · 20m · conditioning")
	assert.Contains(t, out, "WARM-UP")
	assert.Contains(t, out, "Jumping Jacks")
	assert.Contains(t, out, "WORKOUT")
	assert.Contains(t, out, "Engine Room")
	assert.Contains(t, out, "AMRAP 20")
	assert.Contains(t, out, "Kettlebell Swing")
	assert.Contains(t, out, "scaled:")
	assert.Contains(t, out, "rx+:")
	assert.Contains(t, out, "COOLDOWN")
	assert.Contains(t, out, "Couch Stretch")
	assert.Contains(t, out, "ACCESSORIES")
	assert.Contains(t, out, "Midline Circuit")
	assert.Contains(t, out, "(12 min)")
	assert.Contains(t, out, "Good Morning")
	assert.NotContains(t, out, "WARNING")
}

func TestFormatPlan_RendersPrescriptionDetail(t *testing.T) {
	out := FormatPlan(sampleResult())

	assert.Contains(t, out, "reps 15")
	assert.Contains(t, out, "time 200m")
}

func TestFormatPlan_RendersInjuryAlternates(t *testing.T) {
	res := sampleResult()
	movements := wod.Slice(wod.Map(res.Plan, "wod"), "movements")
	first := movements[0].(map[string]any)
	first["injury_alts"] = map[string]any{"exercise": "Hip Thrust", "reps": float64(12)}

	out := FormatPlan(res)

	assert.Contains(t, out, "alt:")
	assert.Contains(t, out, "Hip Thrust")
}

func TestFormatPlan_AlternateListShape(t *testing.T) {
	res := sampleResult()
	movements := wod.Slice(wod.Map(res.Plan, "wod"), "movements")
	first := movements[0].(map[string]any)
	first["injury_alts"] = []any{
		map[string]any{"exercise": "Hip Thrust", "reps": float64(12)},
		map[string]any{"exercise": "Glute Bridge", "reps": float64(15)},
	}

	out := FormatPlan(res)

	assert.Contains(t, out, "Hip Thrust")
	assert.Contains(t, out, "Glute Bridge")
}

func TestFormatPlan_FullyDegradedRun(t *testing.T) {
	res := &pipeline.Result{
		RunID:        "11112222-3333-4444-5555-666677778888",
		Intent:       wod.Mapping{},
		BaseWOD:      wod.Mapping{},
		AnnotatedWOD: wod.Mapping{},
		Plan:         wod.Mapping{},
		Stages: []pipeline.StageTrace{
			{Stage: "intent", Degraded: true, Err: "generation provider unavailable"},
			{Stage: "architect", Degraded: true, Err: "generation provider unavailable"},
			{Stage: "annotate", Degraded: true, Err: "generation provider unavailable"},
			{Stage: "optimize", Degraded: true, Err: "generation provider unavailable"},
		},
	}

	out := FormatPlan(res)

	assert.Contains(t, out, "No plan could be generated")
	assert.Contains(t, out, "--verbose")
	assert.Contains(t, out, "degraded stages: intent, architect, annotate, optimize")
}

func TestFormatPlan_FallsBackToAnnotatedWorkout(t *testing.T) {
	res := sampleResult()
	res.Plan = wod.Mapping{}
	res.Stages[3].Degraded = true

	out := FormatPlan(res)

	assert.Contains(t, out, "Engine Room")
	assert.Contains(t, out, "Kettlebell Swing")
	assert.NotContains(t, out, "No plan could be generated")
	assert.Contains(t, out, "degraded stages: optimize")
}

func TestFormatPlan_FallsBackToBaseWorkout(t *testing.T) {
	res := sampleResult()
	res.Plan = wod.Mapping{}
	res.AnnotatedWOD = wod.Mapping{}

	out := FormatPlan(res)

	assert.Contains(t, out, "Engine Room")
	assert.NotContains(t, out, "No plan could be generated")
}

func TestFormatPlan_EmptyIntentOmitsSummaryLine(t *testing.T) {
	res := sampleResult()
	res.Intent = wod.Mapping{}

	out := FormatPlan(res)

	assert.NotContains(t, out, "INTENT:")
	assert.Contains(t, out, "Engine Room")
}
