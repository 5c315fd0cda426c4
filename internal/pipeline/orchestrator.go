// Package pipeline turns a free-text training request into a complete
// workout plan by threading data through four sequential generation stages:
// intent normalization, workout design, scaling and injury annotation, and
// session optimization. Stages degrade instead of failing, so a run that
// passes request validation always completes.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/wodforge/internal/llm"
	"github.com/alexanderramin/wodforge/internal/wod"
)

// ErrEmptyRequest rejects a run before any stage executes.
var ErrEmptyRequest = errors.New("request must not be empty")

// Result is the bundle a single run produces, inert once returned. The four
// mappings are the contract surface; Stages carries per-stage diagnostics
// for verbose inspection.
type Result struct {
	RunID        string       `json:"run_id"`
	Intent       wod.Mapping  `json:"intent"`
	BaseWOD      wod.Mapping  `json:"base_wod"`
	AnnotatedWOD wod.Mapping  `json:"annotated_wod"`
	Plan         wod.Mapping  `json:"plan"`
	Stages       []StageTrace `json:"stages"`
}

// Pipeline owns the four stages and runs them in fixed order. It holds no
// state between runs.
type Pipeline struct {
	intent    *Stage
	architect *Stage
	annotator *Stage
	optimizer *Stage
}

// New wires all four stages to one provider client.
func New(client llm.Client) *Pipeline {
	return &Pipeline{
		intent:    NewIntentNormalizer(client),
		architect: NewWorkoutArchitect(client),
		annotator: NewScalingAnnotator(client),
		optimizer: NewPerformanceOptimizer(client),
	}
}

// Run executes the full pipeline for one request. The only error is an
// empty request; past validation every stage failure degrades to an empty
// mapping that flows forward, and the run completes. Stage outputs are
// never mutated after the stage returns them.
func (p *Pipeline) Run(ctx context.Context, request string, userCtx wod.Mapping) (*Result, error) {
	if strings.TrimSpace(request) == "" {
		return nil, ErrEmptyRequest
	}
	if userCtx == nil {
		userCtx = wod.Mapping{}
	}

	res := &Result{RunID: uuid.NewString(), Stages: make([]StageTrace, 0, 4)}
	var trace StageTrace

	res.Intent, trace = p.intent.Run(ctx, map[string]any{
		"request": request,
	})
	res.Stages = append(res.Stages, trace)

	res.BaseWOD, trace = p.architect.Run(ctx, map[string]any{
		"request": request,
		"intent":  res.Intent,
	})
	res.Stages = append(res.Stages, trace)

	res.AnnotatedWOD, trace = p.annotator.Run(ctx, map[string]any{
		"base_wod": res.BaseWOD,
		"context":  userCtx,
	})
	res.Stages = append(res.Stages, trace)

	res.Plan, trace = p.optimizer.Run(ctx, map[string]any{
		"annotated_wod": res.AnnotatedWOD,
		"context":       userCtx,
	})
	res.Stages = append(res.Stages, trace)

	return res, nil
}
