package hva_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/hva"
)

func rec(customer string, offset int, hvaID string) domain.HVARecord {
	return domain.HVARecord{
		CustomerID: customer,
		HVAID:      hvaID,
		Timestamp:  day0.Add(time.Duration(offset) * time.Hour),
	}
}

func TestFitSequences(t *testing.T) {
	ctx := context.Background()
	model, err := hva.FitSequences(ctx, []domain.HVARecord{
		rec("c1", 0, "signup"), rec("c1", 1, "upgrade"), rec("c1", 2, "referral"),
		rec("c2", 0, "signup"), rec("c2", 1, "upgrade"), rec("c2", 2, "upgrade"),
	})
	require.NoError(t, err)

	next, err := model.NextHVA(ctx, "signup")
	require.NoError(t, err)
	assert.Equal(t, "upgrade", next)

	paths, err := model.LikelyPaths(ctx, "signup", 2, 2)
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	assert.Equal(t, []string{"signup", "upgrade", "referral"}, paths[0].Segments)
	assert.InDelta(t, 0.5, paths[0].Probability, 1e-9)
}

func TestFitSequences_EmptyLog(t *testing.T) {
	ctx := context.Background()
	model, err := hva.FitSequences(ctx, nil)
	require.NoError(t, err)

	_, err = model.NextHVA(ctx, "signup")
	assert.ErrorIs(t, err, domain.ErrNotFitted)
}
