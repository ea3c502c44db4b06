// Package cli runs the interactive question loop over a line-oriented reader and writer.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/askdoc/internal/models"
)

// OutputFormat is the format answers are written in.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is one JSON object per answer for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteAnswer writes ans to w in the given format.
func WriteAnswer(w io.Writer, ans *models.Answer, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return json.NewEncoder(w).Encode(ans)
	default:
		_, err := fmt.Fprintf(w, "Answer: %s\n\n", ans.Text)
		return err
	}
}

// WriteContext writes the chunk an answer was extracted from.
func WriteContext(w io.Writer, ans *models.Answer) {
	if ans == nil || ans.Context == nil {
		fmt.Fprintln(w, "No context yet. Ask a question first.")
		return
	}
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Chunk: %s | Distance: %.4f\n", ans.Context.ID, ans.Distance)
	fmt.Fprintf(w, "\n%s\n\n", ans.Context.Text)
}
