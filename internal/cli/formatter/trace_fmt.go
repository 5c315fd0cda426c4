package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/wodforge/internal/pipeline"
	"github.com/alexanderramin/wodforge/internal/wod"
)

// FormatTrace renders the per-stage diagnostics of a run for --verbose
// output.
func FormatTrace(runID string, stages []pipeline.StageTrace) string {
	var b strings.Builder

	b.WriteString(Header("Run Trace"))
	b.WriteString("\n")
	b.WriteString(Dim("run ") + TruncID(runID))
	b.WriteString("\n\n")

	for i, st := range stages {
		b.WriteString(fmt.Sprintf("%s %s  %s  %s  %s\n",
			Bold(fmt.Sprintf("%d.", i+1)),
			StyleFg.Render(st.Stage),
			StylePurple.Render(string(st.Mode)),
			StyleBlue.Render(FormatLatency(st.LatencyMs)),
			stageStatus(st),
		))
		if st.RawLen > 0 {
			b.WriteString("   " + Dim(fmt.Sprintf("%d chars of raw output", st.RawLen)) + "\n")
		}
		if st.Rationale != "" {
			for _, line := range strings.Split(st.Rationale, "\n") {
				b.WriteString("   " + Dim(line) + "\n")
			}
		}
		if i < len(stages)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// stageStatus renders a colored ok/degraded badge for one stage trace.
func stageStatus(st pipeline.StageTrace) string {
	if !st.Degraded {
		return StyleGreen.Render("✔ ok")
	}
	if st.Err != "" {
		return StyleRed.Render("✖ degraded: " + st.Err)
	}
	return StyleRed.Render("✖ degraded")
}

// FormatIntermediates renders the mappings each stage handed to the next,
// one JSON block per stage output. Printed after the trace under --verbose.
func FormatIntermediates(res *pipeline.Result) string {
	var b strings.Builder

	b.WriteString(Header("Intermediates"))
	b.WriteString("\n")

	sections := []struct {
		label   string
		mapping wod.Mapping
	}{
		{"intent", res.Intent},
		{"base_wod", res.BaseWOD},
		{"annotated_wod", res.AnnotatedWOD},
	}
	for i, s := range sections {
		b.WriteString(Bold(s.label) + "\n")
		b.WriteString(indentedJSON(s.mapping))
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func indentedJSON(m wod.Mapping) string {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "  " + Dim("(not renderable: "+err.Error()+")") + "\n"
	}
	var b strings.Builder
	for _, line := range strings.Split(string(raw), "\n") {
		b.WriteString("  " + Dim(line) + "\n")
	}
	return b.String()
}
