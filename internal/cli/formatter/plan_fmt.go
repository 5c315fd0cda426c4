package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/wodforge/internal/pipeline"
	"github.com/alexanderramin/wodforge/internal/wod"
)

// movement keys that carry structure rather than prescription detail.
var nonDetailKeys = map[string]bool{
	"exercise":    true,
	"scaled":      true,
	"rx_plus":     true,
	"injury_alts": true,
}

// FormatPlan renders a pipeline result as a styled session plan. Sections
// the run failed to produce are simply absent; a fully degraded run renders
// a short notice instead of an empty box.
func FormatPlan(res *pipeline.Result) string {
	var b strings.Builder

	if line := intentLine(res.Intent); line != "" {
		b.WriteString(StylePurple.Render(line))
		b.WriteString("\n\n")
	}

	wrote := false
	if section := blockSection("Warm-up", wod.Map(res.Plan, "warmup")); section != "" {
		b.WriteString(section)
		wrote = true
	}
	if section := workoutSection(res); section != "" {
		b.WriteString(section)
		wrote = true
	}
	if section := blockSection("Cooldown", wod.Map(res.Plan, "cooldown")); section != "" {
		b.WriteString(section)
		wrote = true
	}
	if section := accessorySection(wod.Slice(res.Plan, "accessories")); section != "" {
		b.WriteString(section)
		wrote = true
	}

	if !wrote {
		b.WriteString(Dim("No plan could be generated for this request."))
		b.WriteString("\n")
		b.WriteString(Dim("Run with --verbose to inspect what each stage did."))
		b.WriteString("\n")
	}

	if warn := degradedLine(res.Stages); warn != "" {
		b.WriteString("\n")
		b.WriteString(warn)
		b.WriteString("\n")
	}

	return RenderBox("Session Plan", strings.TrimRight(b.String(), "\n"))
}

// intentLine condenses the normalized intent into a single summary line.
func intentLine(intent wod.Mapping) string {
	if len(intent) == 0 {
		return ""
	}
	var parts []string
	if t := wod.Str(intent, "type"); t != "" {
		parts = append(parts, strings.ToUpper(t))
	}
	if d, ok := intent["duration"].(float64); ok && d > 0 {
		parts = append(parts, FormatMinutes(int(d)))
	}
	if s := wod.Str(intent, "style"); s != "" {
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return ""
	}
	return "INTENT: " + strings.Join(parts, " · ")
}

// workoutSection renders the main workout. The plan's pinned copy is
// preferred; a degraded optimizer falls back to the annotated workout, and a
// degraded annotator to the base design, so the user always sees the best
// artifact the run produced.
func workoutSection(res *pipeline.Result) string {
	workout := wod.Map(res.Plan, "wod")
	if len(workout) == 0 {
		workout = res.AnnotatedWOD
	}
	if len(workout) == 0 {
		workout = res.BaseWOD
	}
	movements := wod.Movements(workout)
	if len(workout) == 0 || (len(movements) == 0 && wod.Str(workout, "name") == "") {
		return ""
	}

	var b strings.Builder
	b.WriteString(Header("Workout"))
	b.WriteString("\n")
	if name := wod.Str(workout, "name"); name != "" {
		b.WriteString(Bold(name))
		if t := wod.Str(workout, "type"); t != "" {
			b.WriteString("  " + StyleBlue.Render(t))
		}
		b.WriteString("\n")
	} else if t := wod.Str(workout, "type"); t != "" {
		b.WriteString(StyleBlue.Render(t) + "\n")
	}

	for _, m := range movements {
		b.WriteString(movementLines(m))
	}
	b.WriteString("\n")
	return b.String()
}

// movementLines renders one movement with its scaling variants and any
// injury alternates indented beneath it.
func movementLines(m wod.Mapping) string {
	var b strings.Builder
	name := wod.ExerciseName(m)
	if name == "" {
		name = "(unnamed movement)"
	}
	b.WriteString(fmt.Sprintf("  %s %s", StyleGreen.Render("•"), StyleFg.Render(name)))
	if detail := prescription(m); detail != "" {
		b.WriteString("  " + Dim(detail))
	}
	b.WriteString("\n")

	if v := wod.Map(m, "scaled"); len(v) > 0 {
		b.WriteString(variantLine("scaled", v))
	}
	if v := wod.Map(m, "rx_plus"); len(v) > 0 {
		b.WriteString(variantLine("rx+", v))
	}
	for _, alt := range alternates(m) {
		b.WriteString(fmt.Sprintf("      %s %s\n",
			StyleYellow.Render("alt:"),
			Dim(strings.TrimSpace(wod.ExerciseName(alt)+" "+prescription(alt))),
		))
	}
	return b.String()
}

func variantLine(label string, variant wod.Mapping) string {
	text := strings.TrimSpace(wod.ExerciseName(variant) + " " + prescription(variant))
	return fmt.Sprintf("      %s %s\n", StyleBlue.Render(label+":"), Dim(text))
}

// alternates returns the injury substitutions of a movement. The field is a
// single mapping in most model output but tolerated as a list.
func alternates(m wod.Mapping) []wod.Mapping {
	switch v := m["injury_alts"].(type) {
	case map[string]any:
		return []wod.Mapping{v}
	case []any:
		var alts []wod.Mapping
		for _, item := range v {
			if alt, ok := item.(map[string]any); ok {
				alts = append(alts, alt)
			}
		}
		return alts
	default:
		return nil
	}
}

// prescription flattens a movement's detail fields (reps, time, weight, and
// whatever else the model emitted) into one dim string, keys sorted for
// stable output.
func prescription(m wod.Mapping) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if !nonDetailKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, detailValue(m[k])))
	}
	return strings.Join(parts, " · ")
}

// detailValue renders a JSON scalar without the float64 artifacts of
// generic decoding.
func detailValue(v any) string {
	switch val := v.(type) {
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// blockSection renders a warmup or cooldown block: duration plus its
// exercise list. Entries are strings in typical output, mappings when the
// model got detailed.
func blockSection(title string, block wod.Mapping) string {
	if len(block) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n")
	if d := wod.Str(block, "duration"); d != "" {
		b.WriteString(Dim(d) + "\n")
	}
	for _, item := range wod.Slice(block, "exercises") {
		switch entry := item.(type) {
		case string:
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleGreen.Render("•"), StyleFg.Render(entry)))
		case map[string]any:
			b.WriteString(movementLines(entry))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// accessorySection renders the optional accessory sessions appended by the
// optimizer.
func accessorySection(accessories []any) string {
	if len(accessories) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Header("Accessories"))
	b.WriteString("\n")
	for i, item := range accessories {
		acc, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := wod.Str(acc, "name")
		if name == "" {
			name = fmt.Sprintf("Accessory %d", i+1)
		}
		b.WriteString(fmt.Sprintf("%s %s", Bold(fmt.Sprintf("%d.", i+1)), StyleFg.Render(name)))
		if d := wod.Str(acc, "duration"); d != "" {
			b.WriteString("  " + StyleBlue.Render("("+d+")"))
		}
		b.WriteString("\n")
		if details := wod.Str(acc, "details"); details != "" {
			b.WriteString("   " + Dim(details) + "\n")
		}
		for _, ex := range wod.Slice(acc, "exercises") {
			switch entry := ex.(type) {
			case string:
				b.WriteString(fmt.Sprintf("   %s %s\n", StyleGreen.Render("•"), Dim(entry)))
			case map[string]any:
				text := strings.TrimSpace(wod.ExerciseName(entry) + " " + prescription(entry))
				b.WriteString(fmt.Sprintf("   %s %s\n", StyleGreen.Render("•"), Dim(text)))
			}
		}
	}
	b.WriteString("\n")
	return b.String()
}

// degradedLine summarizes degraded stages in one warning line, empty when
// the run was clean.
func degradedLine(stages []pipeline.StageTrace) string {
	var names []string
	for _, st := range stages {
		if st.Degraded {
			names = append(names, st.Stage)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return StyleYellow.Render(fmt.Sprintf("  WARNING: degraded stages: %s", strings.Join(names, ", ")))
}
