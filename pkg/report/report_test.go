package report_test

import (
	"strings"
	"testing"

	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/report"
)

func TestModel_Table(t *testing.T) {
	out := report.Model("Journeys", []string{"active", "new"}, [][]float64{
		{0.25, 0.75},
		{1, 0},
	})

	for _, want := range []string{
		"# Journeys",
		"Segments: 2",
		"| **active** | 25.0% | 75.0% |",
		"| **new** | 100.0% | - |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestModel_DefaultTitle(t *testing.T) {
	out := report.Model("", []string{"a"}, [][]float64{{0}})
	if !strings.Contains(out, "# Transition Model") {
		t.Errorf("expected default title:\n%s", out)
	}
}

func TestPaths(t *testing.T) {
	out := report.Paths("new", []domain.Path{
		{Segments: []string{"new", "active"}, Probability: 0.8},
		{Segments: []string{"new", "churned"}, Probability: 0.2},
	})

	if !strings.Contains(out, "1. `new → active` — 80.00%") {
		t.Errorf("expected ranked path:\n%s", out)
	}
	if !strings.Contains(out, "2. `new → churned` — 20.00%") {
		t.Errorf("expected second path:\n%s", out)
	}
}

func TestPaths_Empty(t *testing.T) {
	out := report.Paths("new", nil)
	if !strings.Contains(out, "No paths found.") {
		t.Errorf("expected empty marker:\n%s", out)
	}
}

func TestInterventions(t *testing.T) {
	out := report.Interventions([]domain.InterventionSummary{
		{InterventionID: "email-1", Name: "Win-back", TotalApplications: 3, UniqueCustomers: 2, SuccessRate: 2.0 / 3.0},
		{InterventionID: "push-1", TotalApplications: 1, UniqueCustomers: 1},
	})

	if !strings.Contains(out, "| Win-back (email-1) | 3 | 2 | 66.7% |") {
		t.Errorf("expected named row:\n%s", out)
	}
	if !strings.Contains(out, "| push-1 | 1 | 1 | 0.0% |") {
		t.Errorf("expected bare-ID row:\n%s", out)
	}
}

func TestTopHVAs(t *testing.T) {
	out := report.TopHVAs([]domain.HVACount{
		{HVAID: "signup", Name: "Account signup", Count: 5},
		{HVAID: "upgrade", Count: 2},
	})

	if !strings.Contains(out, "1. Account signup (signup) — 5 occurrences") {
		t.Errorf("expected top entry:\n%s", out)
	}
}
