// Package report renders model and catalog statistics as markdown. The CLI
// pipes the output through a glamour renderer for terminal display; the raw
// markdown also drops cleanly into docs and dashboards.
package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/meander/pkg/domain"
)

// Model renders the fitted transition model: the vocabulary and the full
// transition table with probabilities as percentages.
func Model(name string, segments []string, matrix [][]float64) string {
	var sb strings.Builder
	if name == "" {
		name = "Transition Model"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "Segments: %d\n\n", len(segments))

	sb.WriteString("| From \\ To |")
	for _, s := range segments {
		fmt.Fprintf(&sb, " %s |", s)
	}
	sb.WriteString("\n|---|")
	sb.WriteString(strings.Repeat("---|", len(segments)))
	sb.WriteString("\n")

	for i, row := range matrix {
		fmt.Fprintf(&sb, "| **%s** |", segments[i])
		for _, p := range row {
			if p == 0 {
				sb.WriteString(" - |")
				continue
			}
			fmt.Fprintf(&sb, " %.1f%% |", p*100)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Paths renders ranked beam search results as an ordered list.
func Paths(start string, paths []domain.Path) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Most likely journeys from `%s`\n\n", start)
	if len(paths) == 0 {
		sb.WriteString("No paths found.\n")
		return sb.String()
	}
	for i, p := range paths {
		fmt.Fprintf(&sb, "%d. `%s` — %.2f%%\n", i+1, strings.Join(p.Segments, " → "), p.Probability*100)
	}
	return sb.String()
}

// Interventions renders a comparison table of intervention summaries,
// preserving their order (the analyzer sorts by success rate).
func Interventions(summaries []domain.InterventionSummary) string {
	var sb strings.Builder
	sb.WriteString("## Intervention performance\n\n")
	sb.WriteString("| Intervention | Applications | Customers | Success rate |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, s := range summaries {
		label := s.InterventionID
		if s.Name != "" {
			label = fmt.Sprintf("%s (%s)", s.Name, s.InterventionID)
		}
		fmt.Fprintf(&sb, "| %s | %d | %d | %.1f%% |\n",
			label, s.TotalApplications, s.UniqueCustomers, s.SuccessRate*100)
	}
	return sb.String()
}

// TopHVAs renders a ranking of the most performed High Value Actions.
func TopHVAs(counts []domain.HVACount) string {
	var sb strings.Builder
	sb.WriteString("## Top High Value Actions\n\n")
	if len(counts) == 0 {
		sb.WriteString("No occurrences recorded.\n")
		return sb.String()
	}
	for i, c := range counts {
		label := c.HVAID
		if c.Name != "" {
			label = fmt.Sprintf("%s (%s)", c.Name, c.HVAID)
		}
		fmt.Fprintf(&sb, "%d. %s — %d occurrences\n", i+1, label, c.Count)
	}
	return sb.String()
}
