package journeylog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meander/internal/adapters/journeylog"
	"github.com/aretw0/meander/pkg/domain"
)

func writeLog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReader_CSVObservations(t *testing.T) {
	path := writeLog(t, "journeys.csv", `customer_id,timestamp,segment
c1,2025-07-01T09:00:00Z,new
c1,2025-07-02T09:00:00Z,active
c2,1751360400,new
`)

	obs, err := journeylog.NewReader(path).Observations(context.Background())
	require.NoError(t, err)

	require.Len(t, obs, 3)
	assert.Equal(t, "c1", obs[0].CustomerID)
	assert.Equal(t, "new", obs[0].Segment)
	assert.Equal(t, time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC), obs[0].Timestamp)
	// Unix-seconds timestamps are accepted too.
	assert.Equal(t, int64(1751360400), obs[2].Timestamp.Unix())
}

func TestReader_CSVColumnOrderIsFree(t *testing.T) {
	path := writeLog(t, "journeys.csv", `segment,customer_id,timestamp
new,c1,2025-07-01T09:00:00Z
`)

	obs, err := journeylog.NewReader(path).Observations(context.Background())
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, "new", obs[0].Segment)
}

func TestReader_CSVMissingColumn(t *testing.T) {
	path := writeLog(t, "journeys.csv", `customer_id,timestamp
c1,2025-07-01T09:00:00Z
`)

	_, err := journeylog.NewReader(path).Observations(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestReader_CSVBadTimestamp(t *testing.T) {
	path := writeLog(t, "journeys.csv", `customer_id,timestamp,segment
c1,yesterday,new
`)

	_, err := journeylog.NewReader(path).Observations(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReader_EmptyCSV(t *testing.T) {
	path := writeLog(t, "journeys.csv", "")

	obs, err := journeylog.NewReader(path).Observations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, obs)
}

func TestReader_JSONL(t *testing.T) {
	path := writeLog(t, "journeys.jsonl", `{"customer_id":"c1","timestamp":"2025-07-01T09:00:00Z","segment":"new"}

{"customer_id":"c1","timestamp":1751446800,"segment":"active"}
`)

	obs, err := journeylog.NewReader(path).Observations(context.Background())
	require.NoError(t, err)

	require.Len(t, obs, 2)
	assert.Equal(t, "active", obs[1].Segment)
	assert.Equal(t, int64(1751446800), obs[1].Timestamp.Unix())
}

func TestReader_JSONLMalformed(t *testing.T) {
	path := writeLog(t, "journeys.jsonl", `{"customer_id": "c1"`)

	_, err := journeylog.NewReader(path).Observations(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestReader_UnsupportedFormat(t *testing.T) {
	path := writeLog(t, "journeys.parquet", "not really parquet")

	_, err := journeylog.NewReader(path).Observations(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestReader_HVARecordsAndResults(t *testing.T) {
	ctx := context.Background()

	hvaPath := writeLog(t, "hvas.csv", `customer_id,timestamp,hva_id
c1,2025-07-01T09:00:00Z,signup
`)
	recs, err := journeylog.NewReader(hvaPath).HVARecords(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "signup", recs[0].HVAID)

	resPath := writeLog(t, "results.csv", `intervention_id,customer_id,timestamp,outcome
email-1,c1,2025-07-01T09:00:00Z,success
`)
	results, err := journeylog.NewReader(resPath).InterventionResults(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.OutcomeSuccess, results[0].Outcome)

	actPath := writeLog(t, "actions.csv", `customer_id,timestamp,action
c1,2025-07-01T09:00:00Z,browse
`)
	actions, err := journeylog.NewReader(actPath).ActionEvents(ctx)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "browse", actions[0].Action)
}
