package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/meander/internal/presentation/graph"
)

func fixture() ([]string, [][]float64) {
	segments := []string{"active", "churned", "new"}
	matrix := [][]float64{
		{0.9, 0.1, 0},
		{0, 0, 0}, // churned is absorbing
		{1, 0, 0},
	}
	return segments, matrix
}

func TestGenerateMermaid_NodesAndEdges(t *testing.T) {
	segments, matrix := fixture()
	out := graph.GenerateMermaid(segments, matrix, nil)

	if !strings.HasPrefix(out, "graph TD\n") {
		t.Errorf("missing header: %q", out)
	}
	for _, want := range []string{
		`active["active"]`,
		`new["new"]`,
		`active -- "90%" --> active`,
		`new -- "100%" --> active`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestGenerateMermaid_AbsorbingSegmentIsCircle(t *testing.T) {
	segments, matrix := fixture()
	out := graph.GenerateMermaid(segments, matrix, nil)

	if !strings.Contains(out, `churned(("churned"))`) {
		t.Errorf("expected absorbing circle for churned:\n%s", out)
	}
}

func TestGenerateMermaid_WeakEdgesAreDotted(t *testing.T) {
	segments, matrix := fixture()
	out := graph.GenerateMermaid(segments, matrix, nil)

	if !strings.Contains(out, `active -. "10%" .-> churned`) {
		t.Errorf("expected dotted weak edge:\n%s", out)
	}
}

func TestGenerateMermaid_OverlayFiltersAndHighlights(t *testing.T) {
	segments, matrix := fixture()
	out := graph.GenerateMermaid(segments, matrix, &graph.Overlay{
		Highlight:      "new",
		MinProbability: 0.5,
	})

	if strings.Contains(out, `"10%"`) {
		t.Errorf("edge below threshold should be dropped:\n%s", out)
	}
	if !strings.Contains(out, "class new highlight;") {
		t.Errorf("expected highlight class:\n%s", out)
	}
}

func TestGenerateMermaid_SanitizesLabels(t *testing.T) {
	out := graph.GenerateMermaid(
		[]string{"at-risk", "high value"},
		[][]float64{{0, 1}, {0, 0}},
		nil,
	)

	if !strings.Contains(out, `high_value(("high value"))`) {
		t.Errorf("expected sanitized node ID:\n%s", out)
	}
	if !strings.Contains(out, `at_risk -- "100%" --> high_value`) {
		t.Errorf("expected sanitized edge:\n%s", out)
	}
}
