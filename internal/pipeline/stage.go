package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/wodforge/internal/llm"
	"github.com/alexanderramin/wodforge/internal/wod"
)

// Mode selects how a stage's generation call is prompted.
type Mode string

const (
	// ModeDirect asks for the JSON payload alone.
	ModeDirect Mode = "direct"

	// ModeReasoning asks for rationale prose followed by the JSON payload,
	// in one blocking completion. The rationale never enters the structured
	// result; it is kept on the trace for inspection.
	ModeReasoning Mode = "reasoning"
)

// StageTrace records what one stage did during a run.
type StageTrace struct {
	Stage     string `json:"stage"`
	Mode      Mode   `json:"mode"`
	Rationale string `json:"rationale,omitempty"`
	RawLen    int    `json:"raw_len"`
	LatencyMs int64  `json:"latency_ms"`
	Degraded  bool   `json:"degraded"`
	Err       string `json:"error,omitempty"`
}

// enforceFunc is a hard post-generation guard applied to a stage's parsed
// output before it leaves the stage. Guards may mutate out, which the stage
// owns, but must treat inputs as read-only.
type enforceFunc func(inputs map[string]any, out wod.Mapping) wod.Mapping

// Stage wraps one generation call under a declared field contract. A stage
// never fails: provider errors and unparseable output degrade to an empty
// mapping, recorded on the trace, and the run continues.
type Stage struct {
	sig     Signature
	mode    Mode
	task    llm.TaskType
	client  llm.Client
	enforce enforceFunc
}

// Run executes the stage against the declared inputs and returns a freshly
// constructed mapping the caller owns.
func (s *Stage) Run(ctx context.Context, inputs map[string]any) (wod.Mapping, StageTrace) {
	trace := StageTrace{Stage: s.sig.Name, Mode: s.mode}
	out := wod.Mapping{}

	start := time.Now()
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         s.task,
		SystemPrompt: s.sig.SystemPrompt(s.mode),
		UserPrompt:   s.sig.UserPrompt(inputs),
	})
	if err != nil {
		trace.LatencyMs = time.Since(start).Milliseconds()
		trace.Degraded = true
		trace.Err = err.Error()
	} else {
		trace.LatencyMs = resp.LatencyMs
		trace.RawLen = len(resp.Text)
		if s.mode == ModeReasoning {
			trace.Rationale = leadingRationale(resp.Text)
		}
		out = llm.ExtractMapping(resp.Text)
		if len(out) == 0 {
			trace.Degraded = true
			trace.Err = "no usable JSON object in model output"
		}
	}

	if s.enforce != nil {
		out = s.enforce(inputs, out)
	}
	return out, trace
}

// leadingRationale returns the prose a reasoning-mode completion emitted
// before its JSON payload. Best effort, for trace inspection only: payload
// extraction does not depend on this split.
func leadingRationale(raw string) string {
	prose := raw
	if i := strings.IndexByte(raw, '{'); i >= 0 {
		prose = raw[:i]
	}
	prose = strings.TrimSpace(prose)
	prose = strings.TrimSuffix(prose, "```json")
	prose = strings.TrimSuffix(prose, "```")
	return strings.TrimSpace(prose)
}
