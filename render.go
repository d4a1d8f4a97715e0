package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format is the output format of a rendered report
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats
var Formats = []string{string(FormatText), string(FormatJSON), string(FormatMarkdown)}

// Render writes the result in the given format. The result is trusted as-is.
func Render(w io.Writer, result *Result, format Format) error {
	switch format {
	case FormatText, "":
		return renderText(w, result)
	case FormatJSON:
		return renderJSON(w, result)
	case FormatMarkdown:
		return renderMarkdown(w, result)
	default:
		return fmt.Errorf("audit: unknown format %q", format)
	}
}

func renderText(w io.Writer, result *Result) error {
	var sb strings.Builder
	sb.WriteString("\nAudit Report:\n")
	sb.WriteString(result.AuditReport + "\n")
	sb.WriteString("\nMetric Scores:\n")
	for _, m := range result.MetricScores {
		fmt.Fprintf(&sb, "%s: %s/10\n", m.Metric, m.String())
	}
	sb.WriteString("\nSuggestions for Improvement:\n")
	sb.WriteString(result.Suggestions + "\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func renderJSON(w io.Writer, result *Result) error {
	// Keep metricScores an array even when empty
	out := *result
	if out.MetricScores == nil {
		out.MetricScores = []*MetricScore{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&out)
}

func renderMarkdown(w io.Writer, result *Result) error {
	var sb strings.Builder
	sb.WriteString("# Audit Report\n\n")
	sb.WriteString(result.AuditReport + "\n\n")
	sb.WriteString("## Metric Scores\n\n")
	if len(result.MetricScores) > 0 {
		sb.WriteString("| Metric | Score |\n")
		sb.WriteString("| --- | --- |\n")
		for _, m := range result.MetricScores {
			fmt.Fprintf(&sb, "| %s | %s/10 |\n", escapeCell(m.Metric), escapeCell(m.String()))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("## Suggestions for Improvement\n\n")
	sb.WriteString(result.Suggestions + "\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
