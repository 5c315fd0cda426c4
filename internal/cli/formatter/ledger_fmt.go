package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wodforge/internal/ledger"
)

// FormatLedger renders recent call ledger rows as a table, newest first.
func FormatLedger(entries []ledger.Entry) string {
	if len(entries) == 0 {
		return Dim("No generation calls recorded yet.") + "\n"
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			TruncID(e.CallID),
			StyleFg.Render(e.Task),
			StylePurple.Render(e.Provider),
			StyleFg.Render(e.Model),
			StyleBlue.Render(FormatLatency(e.LatencyMs)),
			ledgerStatus(e.Status),
			Dim(e.CreatedAt),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Call Ledger"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d most recent calls", len(entries))))
	b.WriteString("\n\n")
	b.WriteString(RenderTable(
		[]string{"CALL", "TASK", "PROVIDER", "MODEL", "LATENCY", "STATUS", "AT"},
		rows,
	))
	return b.String()
}

func ledgerStatus(status string) string {
	if status == "ok" {
		return StyleGreen.Render(status)
	}
	return StyleRed.Render(status)
}
