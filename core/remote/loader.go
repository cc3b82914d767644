package remote

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"remote-loader/core/logger"

	"go.uber.org/zap"
)

// Loader composes stylesheet resolution and deadline-bounded module loading.
type Loader struct {
	modules    ModuleLoader
	styles     *StyleResolver
	logger     *zap.Logger
	observer   Observer
	exportName string
	defaults   Config
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithObserver sets the observer notified after each load.
func WithObserver(o Observer) Option {
	return func(ld *Loader) {
		if o != nil {
			ld.observer = o
		}
	}
}

// WithExportName overrides the module field that holds the routes.
func WithExportName(name string) Option {
	return func(ld *Loader) {
		if name != "" {
			ld.exportName = name
		}
	}
}

// WithDefaults sets the defaults applied to descriptors with empty fields.
func WithDefaults(cfg Config) Option {
	return func(ld *Loader) {
		ld.defaults = cfg
		if cfg.ExportName != "" {
			ld.exportName = cfg.ExportName
		}
	}
}

// NewLoader creates a Loader. styles may be nil to skip stylesheet loading.
func NewLoader(modules ModuleLoader, styles *StyleResolver, opts ...Option) *Loader {
	l := &Loader{
		modules:    modules,
		styles:     styles,
		logger:     zap.NewNop(),
		observer:   nopObserver{},
		exportName: DefaultExportName,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadRemoteFeature returns the remote's route sequence, or FallbackRoutes
// when the remote cannot be loaded. It never fails.
func (l *Loader) LoadRemoteFeature(ctx context.Context, d RemoteDescriptor) []RouteEntry {
	return l.Load(ctx, d).Routes
}

// Load is LoadRemoteFeature with diagnostics attached.
func (l *Loader) Load(ctx context.Context, d RemoteDescriptor) LoadOutcome {
	start := time.Now()
	d = l.applyDefaults(d)
	log := l.logger.With(zap.String("remote", d.label()))

	routes, err := l.resolve(ctx, d, log)

	outcome := LoadOutcome{Name: d.Name, Routes: routes, Elapsed: time.Since(start)}
	if err != nil {
		logger.Component(log, componentRoutes).Warn("remote unavailable → blank fallback",
			zap.Duration("elapsed", outcome.Elapsed),
			zap.Error(err))
		outcome.Routes = FallbackRoutes()
		outcome.Fallback = true
		outcome.Err = err
	}

	l.observer.LoadFinished(outcome)
	return outcome
}

func (l *Loader) resolve(ctx context.Context, d RemoteDescriptor, log *zap.Logger) ([]RouteEntry, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if l.modules == nil {
		return nil, ErrNoModuleLoader
	}

	l.startStyles(ctx, d, log)

	req := ModuleRequest{Kind: ModuleKindModule, Entry: d.EntryURL, ExposedKey: d.ExposedKey}
	record, err := WithDeadline(ctx, func(ctx context.Context) (ModuleRecord, error) {
		return l.modules.LoadModule(ctx, req)
	}, d.Timeout, importLabel)
	if err != nil {
		return nil, err
	}

	return routesFrom(record, l.exportName)
}

// startStyles loads stylesheets in the background. The goroutine outlives
// the caller's cancellation.
func (l *Loader) startStyles(ctx context.Context, d RemoteDescriptor, log *zap.Logger) {
	if l.styles == nil {
		return
	}
	bg := context.WithoutCancel(ctx)
	cssLog := logger.Component(log, componentCSS)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				cssLog.Warn("non-fatal", zap.Any("panic", p))
			}
		}()
		if err := l.styles.LoadStyles(bg, d.EntryURL, d.ManifestPath, d.FallbackStylesheetPath); err != nil {
			cssLog.Warn("non-fatal", zap.Error(err))
		}
	}()
}

func (l *Loader) applyDefaults(d RemoteDescriptor) RemoteDescriptor {
	if d.ManifestPath == "" {
		d.ManifestPath = l.defaults.ManifestPath
	}
	if d.FallbackStylesheetPath == "" {
		d.FallbackStylesheetPath = l.defaults.FallbackStylesheetPath
	}
	if d.Timeout == 0 && l.defaults.TimeoutMs > 0 {
		d.Timeout = time.Duration(l.defaults.TimeoutMs) * time.Millisecond
	}
	return d.WithDefaults()
}

// routesFrom validates that record exports a sequence under name.
func routesFrom(record ModuleRecord, name string) ([]RouteEntry, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: module record is empty", ErrInvalidRoutes)
	}
	v, ok := record[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not exported", ErrInvalidRoutes, name)
	}

	switch routes := v.(type) {
	case []any:
		return routes, nil
	case nil:
		return nil, fmt.Errorf("%w: %s is null", ErrInvalidRoutes, name)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %s is %T, not a sequence", ErrInvalidRoutes, name, v)
	}
	routes := make([]RouteEntry, rv.Len())
	for i := range routes {
		routes[i] = rv.Index(i).Interface()
	}
	return routes, nil
}
