// Package tests provides reusable contract suites verifying that a
// repository backend complies with the ports interfaces. Every backend
// (memory, redis) runs these against a fresh instance.
package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/ports"
)

// RunHVARepositoryContract verifies an HVARepository implementation.
// The repository must be empty when passed in.
func RunHVARepositoryContract(t *testing.T, repo ports.HVARepository) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	t.Run("GetDefinition_NotDefined", func(t *testing.T) {
		_, err := repo.GetDefinition(ctx, "missing")
		if !errors.Is(err, domain.ErrHVANotDefined) {
			t.Fatalf("expected ErrHVANotDefined, got %v", err)
		}
	})

	t.Run("PutGetDefinition", func(t *testing.T) {
		def := domain.HVADefinition{ID: "signup", Name: "Account signup", Measurement: "count"}
		if err := repo.PutDefinition(ctx, def); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		got, err := repo.GetDefinition(ctx, "signup")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got != def {
			t.Errorf("definition mismatch. got %+v, want %+v", got, def)
		}
	})

	t.Run("ListDefinitions_SortedByID", func(t *testing.T) {
		for _, id := range []string{"upgrade", "referral"} {
			if err := repo.PutDefinition(ctx, domain.HVADefinition{ID: id, Name: id}); err != nil {
				t.Fatalf("put %s failed: %v", id, err)
			}
		}

		defs, err := repo.ListDefinitions(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(defs) != 3 {
			t.Fatalf("expected 3 definitions, got %d", len(defs))
		}
		for i := 1; i < len(defs); i++ {
			if defs[i-1].ID > defs[i].ID {
				t.Errorf("definitions not sorted: %s before %s", defs[i-1].ID, defs[i].ID)
			}
		}
	})

	t.Run("Records_RoundTrip", func(t *testing.T) {
		recs := []domain.HVARecord{
			{CustomerID: "c1", HVAID: "signup", Timestamp: now},
			{CustomerID: "c2", HVAID: "signup", Timestamp: now.Add(time.Hour)},
			{CustomerID: "c1", HVAID: "upgrade", Timestamp: now.Add(2 * time.Hour)},
		}
		for _, r := range recs {
			if err := repo.AppendRecord(ctx, r); err != nil {
				t.Fatalf("append failed: %v", err)
			}
		}

		byCustomer, err := repo.RecordsByCustomer(ctx, "c1")
		if err != nil {
			t.Fatalf("records by customer failed: %v", err)
		}
		if len(byCustomer) != 2 {
			t.Errorf("expected 2 records for c1, got %d", len(byCustomer))
		}

		all, err := repo.Records(ctx)
		if err != nil {
			t.Fatalf("records failed: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 records total, got %d", len(all))
		}
	})

	t.Run("RecordsByCustomer_UnknownCustomerIsEmpty", func(t *testing.T) {
		recs, err := repo.RecordsByCustomer(ctx, "nobody")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("expected no records, got %d", len(recs))
		}
	})
}

// RunInterventionRepositoryContract verifies an InterventionRepository
// implementation. The repository must be empty when passed in.
func RunInterventionRepositoryContract(t *testing.T, repo ports.InterventionRepository) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := repo.Get(ctx, "missing")
		if !errors.Is(err, domain.ErrInterventionNotFound) {
			t.Fatalf("expected ErrInterventionNotFound, got %v", err)
		}
	})

	t.Run("PutGetUpdate", func(t *testing.T) {
		iv := domain.Intervention{ID: "email-1", Name: "Welcome email", Category: "email"}
		if err := repo.Put(ctx, iv); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		got, err := repo.Get(ctx, "email-1")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got != iv {
			t.Errorf("intervention mismatch. got %+v, want %+v", got, iv)
		}

		iv.Name = "Welcome email v2"
		if err := repo.Put(ctx, iv); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		got, err = repo.Get(ctx, "email-1")
		if err != nil {
			t.Fatalf("get after update failed: %v", err)
		}
		if got.Name != "Welcome email v2" {
			t.Errorf("update not applied, got %q", got.Name)
		}
	})

	t.Run("List_SortedByID", func(t *testing.T) {
		for _, id := range []string{"push-1", "discount-1"} {
			if err := repo.Put(ctx, domain.Intervention{ID: id, Name: id}); err != nil {
				t.Fatalf("put %s failed: %v", id, err)
			}
		}

		ivs, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(ivs) != 3 {
			t.Fatalf("expected 3 interventions, got %d", len(ivs))
		}
		for i := 1; i < len(ivs); i++ {
			if ivs[i-1].ID > ivs[i].ID {
				t.Errorf("interventions not sorted: %s before %s", ivs[i-1].ID, ivs[i].ID)
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, "push-1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := repo.Get(ctx, "push-1"); !errors.Is(err, domain.ErrInterventionNotFound) {
			t.Errorf("expected ErrInterventionNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, "push-1"); !errors.Is(err, domain.ErrInterventionNotFound) {
			t.Errorf("expected ErrInterventionNotFound for double delete, got %v", err)
		}
	})

	t.Run("Results_RoundTrip", func(t *testing.T) {
		results := []domain.InterventionResult{
			{InterventionID: "email-1", CustomerID: "c1", Timestamp: now, Outcome: domain.OutcomeSuccess},
			{InterventionID: "email-1", CustomerID: "c2", Timestamp: now.Add(time.Hour), Outcome: domain.OutcomeFailure},
			{InterventionID: "discount-1", CustomerID: "c1", Timestamp: now.Add(2 * time.Hour), Outcome: domain.OutcomeSuccess},
		}
		for _, r := range results {
			if err := repo.AppendResult(ctx, r); err != nil {
				t.Fatalf("append failed: %v", err)
			}
		}

		byIntervention, err := repo.ResultsByIntervention(ctx, "email-1")
		if err != nil {
			t.Fatalf("results by intervention failed: %v", err)
		}
		if len(byIntervention) != 2 {
			t.Errorf("expected 2 results for email-1, got %d", len(byIntervention))
		}

		all, err := repo.Results(ctx)
		if err != nil {
			t.Fatalf("results failed: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 results total, got %d", len(all))
		}
	})
}
