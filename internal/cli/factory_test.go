package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meander/internal/cli"
)

func TestBuild_DefaultsToMemory(t *testing.T) {
	deps, err := cli.Build(cli.BuildOptions{
		ConfigPath: filepath.Join(t.TempDir(), "absent.yaml"),
	})
	require.NoError(t, err)

	require.NotNil(t, deps.Engine)
	require.NotNil(t, deps.Tracker)
	require.NotNil(t, deps.Catalog)
	require.NotNil(t, deps.Analyzer)
	assert.Equal(t, ":8080", deps.Config.Server.Addr)
	assert.False(t, deps.Engine.Fitted())
}

func TestBuild_WithMetricsRegisterer(t *testing.T) {
	deps, err := cli.Build(cli.BuildOptions{
		ConfigPath: filepath.Join(t.TempDir(), "absent.yaml"),
		Metrics:    prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	require.NotNil(t, deps.Engine)
}

func TestFitFromFile(t *testing.T) {
	deps, err := cli.Build(cli.BuildOptions{
		ConfigPath: filepath.Join(t.TempDir(), "absent.yaml"),
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "journeys.csv")
	require.NoError(t, os.WriteFile(path, []byte(`customer_id,timestamp,segment
c1,2025-07-01T09:00:00Z,new
c1,2025-07-02T09:00:00Z,active
`), 0644))

	n, err := cli.FitFromFile(context.Background(), deps, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, deps.Engine.Fitted())

	segments, err := deps.Engine.Segments()
	require.NoError(t, err)
	assert.Equal(t, []string{"active", "new"}, segments)
}

func TestFitFromFile_MissingFile(t *testing.T) {
	deps, err := cli.Build(cli.BuildOptions{
		ConfigPath: filepath.Join(t.TempDir(), "absent.yaml"),
	})
	require.NoError(t, err)

	_, err = cli.FitFromFile(context.Background(), deps, filepath.Join(t.TempDir(), "ghost.csv"))
	assert.Error(t, err)
}
