package cmd

import (
	"fmt"

	"remote-loader/core/config"
	"remote-loader/core/database"
	"remote-loader/core/document"
	"remote-loader/core/fetch"
	"remote-loader/core/jsloader"
	"remote-loader/core/logger"
	"remote-loader/core/metrics"
	"remote-loader/core/remote"
	"remote-loader/feature/remotes"

	"go.uber.org/zap"
)

// app bundles the components shared by the commands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	head    *document.Head
	metrics *metrics.Observer
	loader  *remote.Loader
	store   *remotes.Store
	remotes *remotes.Service
}

// bootstrap loads configuration and wires the loader. The catalogue database
// is connected when enabled; a failure only disables stored remotes unless
// requireDB is set.
func bootstrap(requireDB bool) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{
		cfg:     cfg,
		logger:  logg,
		head:    document.NewHead(),
		metrics: metrics.New(),
	}

	client := fetch.NewClient(cfg.Fetch)
	dedup := remote.NewDeduplicator(a.head.Inserter(client), nil)
	dedup.SetObserver(a.metrics)
	styles := remote.NewStyleResolver(client, dedup, logg)
	a.loader = remote.NewLoader(
		jsloader.New(client, cfg.Script, logg),
		styles,
		remote.WithLogger(logg),
		remote.WithObserver(a.metrics),
		remote.WithDefaults(cfg.Loader),
	)

	if cfg.Database.Enabled || requireDB {
		store, err := openStore(cfg.Database)
		switch {
		case err == nil:
			a.store = store
			logg.Info("Connected to remote catalogue", zap.String("driver", cfg.Database.Driver))
		case requireDB:
			return nil, fmt.Errorf("database connection required: %w", err)
		default:
			logg.Warn("Optional database connection failed", zap.Error(err))
		}
	}

	a.remotes = remotes.NewService(a.loader, a.head, a.store, cfg.Remotes, cfg.Loader, logg)
	return a, nil
}

func openStore(cfg database.Config) (*remotes.Store, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	store := remotes.NewStore(db)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}
