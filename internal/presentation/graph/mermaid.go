package graph

import (
	"fmt"
	"strings"
)

// Overlay contains presentation hints for the transition diagram.
type Overlay struct {
	// Highlight renders one segment with an accent style.
	Highlight string
	// MinProbability drops edges below the given weight, useful for
	// decluttering dense matrices.
	MinProbability float64
}

// GenerateMermaid produces a Mermaid flowchart from a fitted transition
// matrix. Segments become nodes; non-zero probabilities become edges
// labeled with their percentage. It applies semantic styling:
// - Absorbing segment (all-zero row): ((Circle))
// - Weak edge (< 20%): dotted arrow
// - Default: [Rectangle] with a solid arrow
// Overlay styles (Highlight) are applied if provided.
func GenerateMermaid(segments []string, matrix [][]float64, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i, segment := range segments {
		safeID := sanitizeMermaidID(segment)

		opener, closer := "[", "]"
		if i < len(matrix) && isAbsorbing(matrix[i]) {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, segment, closer))
	}

	var minProb float64
	if overlay != nil {
		minProb = overlay.MinProbability
	}

	for i, row := range matrix {
		safeFrom := sanitizeMermaidID(segments[i])
		for j, p := range row {
			if p == 0 || p < minProb {
				continue
			}
			safeTo := sanitizeMermaidID(segments[j])

			label := fmt.Sprintf("%.0f%%", p*100)
			arrow := fmt.Sprintf("-- \"%s\" -->", label)
			if p < 0.2 {
				arrow = fmt.Sprintf("-. \"%s\" .->", label)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeFrom, arrow, safeTo))
		}
	}

	// Apply Overlay Styles
	if overlay != nil && overlay.Highlight != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s highlight;\n", sanitizeMermaidID(overlay.Highlight)))
	}

	return sb.String()
}

func isAbsorbing(row []float64) bool {
	for _, p := range row {
		if p != 0 {
			return false
		}
	}
	return true
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
