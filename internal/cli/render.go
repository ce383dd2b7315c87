package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/actor/pkg/domain"
	"github.com/muesli/termenv"
)

// Output formats accepted by WriteReport.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Report is the outcome of one check.
type Report struct {
	Contract     string   `json:"contract"`
	InvocationID string   `json:"invocation_id"`
	Success      bool     `json:"success"`
	Errors       []string `json:"errors,omitempty"`
}

// NewReport summarizes a checked context.
func NewReport(contract string, c *domain.Context) Report {
	return Report{
		Contract:     contract,
		InvocationID: c.ID(),
		Success:      c.Success(),
		Errors:       c.Errors(),
	}
}

// WriteReport prints r as JSON or as coloured text using profile.
func WriteReport(w io.Writer, r Report, format string, profile termenv.Profile) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "", FormatText:
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if r.Success {
		status := profile.String("✔ valid").Foreground(profile.Color("#22c55e")).Bold()
		_, err := fmt.Fprintf(w, "%s %s\n", status, r.Contract)
		return err
	}

	status := profile.String("✘ invalid").Foreground(profile.Color("#ef4444")).Bold()
	if _, err := fmt.Fprintf(w, "%s %s\n", status, r.Contract); err != nil {
		return err
	}
	for _, msg := range r.Errors {
		line := profile.String("  - " + msg).Foreground(profile.Color("#fb7185"))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
