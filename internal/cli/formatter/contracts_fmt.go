package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wodforge/internal/pipeline"
)

// FormatContracts renders the stage field contracts in pipeline order, the
// output of `wodforge stages`.
func FormatContracts(contracts []pipeline.Signature) string {
	modes := pipeline.Modes()

	var b strings.Builder
	b.WriteString(Header("Stage Contracts"))
	b.WriteString("\n\n")

	for i, sig := range contracts {
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			Bold(fmt.Sprintf("%d.", i+1)),
			StyleFg.Render(sig.Name),
			StylePurple.Render(string(modes[sig.Name])),
		))
		for _, f := range sig.Inputs {
			b.WriteString(fieldLine("in", f))
		}
		for _, f := range sig.Outputs {
			b.WriteString(fieldLine("out", f))
		}
		if i < len(contracts)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func fieldLine(dir string, f pipeline.Field) string {
	return fmt.Sprintf("   %s %s  %s\n",
		StyleBlue.Render(fmt.Sprintf("%-3s", dir)),
		StyleGreen.Render(f.Name),
		Dim(f.Desc),
	)
}
