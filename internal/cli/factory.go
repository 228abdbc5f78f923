// Package cli holds the shared plumbing of the meander commands: building
// an engine from configuration, selecting repositories, and terminal
// presentation helpers.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/meander"
	redisadapter "github.com/aretw0/meander/internal/adapters/redis"
	"github.com/aretw0/meander/internal/config"
	"github.com/aretw0/meander/internal/logging"
	"github.com/aretw0/meander/pkg/adapters/memory"
	"github.com/aretw0/meander/pkg/hva"
	"github.com/aretw0/meander/pkg/interventions"
	"github.com/aretw0/meander/pkg/observability"
	"github.com/aretw0/meander/pkg/ports"
)

// BuildOptions controls how the application wiring is assembled.
type BuildOptions struct {
	// ConfigPath is the YAML configuration file. A missing file yields
	// defaults.
	ConfigPath string
	// Debug forces debug-level logging and verbose lifecycle hooks.
	Debug bool
	// Metrics, when non-nil, registers Prometheus collectors and feeds them
	// from engine lifecycle events. The serve commands pass the default
	// registerer; one-shot commands leave it nil.
	Metrics prometheus.Registerer
}

// Deps bundles everything a command needs.
type Deps struct {
	Config   config.Config
	Logger   *slog.Logger
	Engine   *meander.Engine
	Tracker  *hva.Tracker
	Catalog  *interventions.Catalog
	Analyzer *interventions.Analyzer
}

// Build assembles the engine and catalogs from configuration. Redis-backed
// repositories are used when redis.addr is set; otherwise everything stays
// in memory.
func Build(opts BuildOptions) (*Deps, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}

	logger := buildLogger(cfg.Logging.Level, opts.Debug)

	hooks := noopHooks()
	if opts.Metrics != nil {
		hooks = observability.NewMetrics(opts.Metrics).Hooks()
	}
	if opts.Debug {
		hooks = combineHooks(hooks, debugHooks(logger))
	}

	engine := meander.New(
		meander.WithLogger(logger),
		meander.WithLifecycleHooks(hooks),
	)

	hvaRepo, ivRepo := buildRepositories(cfg.Redis)

	return &Deps{
		Config:   cfg,
		Logger:   logger,
		Engine:   engine,
		Tracker:  hva.NewTracker(hvaRepo),
		Catalog:  interventions.NewCatalog(ivRepo),
		Analyzer: interventions.NewAnalyzer(ivRepo),
	}, nil
}

func buildLogger(level string, debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(logging.ParseLevel(level))
}

// buildRepositories selects the storage backend. An empty Redis address
// keeps the catalogs in process memory.
func buildRepositories(cfg config.RedisConfig) (ports.HVARepository, ports.InterventionRepository) {
	if cfg.Addr == "" {
		return memory.NewHVARepo(), memory.NewInterventionRepo()
	}

	var opts []redisadapter.Option
	if cfg.Prefix != "" {
		opts = append(opts, redisadapter.WithPrefix(cfg.Prefix))
	}
	if cfg.TTL > 0 {
		opts = append(opts, redisadapter.WithTTL(cfg.TTL))
	}
	return redisadapter.NewHVARepo(cfg.Addr, cfg.Password, cfg.DB, opts...),
		redisadapter.NewInterventionRepo(cfg.Addr, cfg.Password, cfg.DB, opts...)
}
