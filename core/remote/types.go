package remote

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

const (
	// DefaultManifestPath is where remotes publish their stylesheet manifest.
	DefaultManifestPath = "assets/assets.json"
	// DefaultFallbackStylesheetPath is the stable, unhashed stylesheet.
	DefaultFallbackStylesheetPath = "assets/style.css"
	// DefaultTimeout bounds how long a caller waits for the module.
	DefaultTimeout = 8 * time.Second
	// DefaultExportName is the field a remote module exports its routes under.
	DefaultExportName = "RemoteRoutes"

	componentCSS    = "mfe:css"
	componentRoutes = "mfe:routes"

	// ModuleKindModule is the only load kind the loader requests.
	ModuleKindModule = "module"

	importLabel = "remote routes import"
)

// RemoteDescriptor identifies a remote and how to load it.
type RemoteDescriptor struct {
	// Name is a label used in logs and metrics. Optional.
	Name string
	// EntryURL is the absolute URL of the remote's entry script.
	EntryURL string
	// ExposedKey is the key the remote exposes its module under (e.g. "./Module").
	ExposedKey string
	// ManifestPath is resolved against the asset base.
	ManifestPath string
	// FallbackStylesheetPath is resolved against the asset base.
	FallbackStylesheetPath string
	// Timeout bounds the module load.
	Timeout time.Duration
}

// WithDefaults returns a copy with zero fields replaced by package defaults.
func (d RemoteDescriptor) WithDefaults() RemoteDescriptor {
	if d.ManifestPath == "" {
		d.ManifestPath = DefaultManifestPath
	}
	if d.FallbackStylesheetPath == "" {
		d.FallbackStylesheetPath = DefaultFallbackStylesheetPath
	}
	if d.Timeout == 0 {
		d.Timeout = DefaultTimeout
	}
	return d
}

// Validate checks the descriptor invariants.
func (d RemoteDescriptor) Validate() error {
	u, err := url.Parse(d.EntryURL)
	if err != nil {
		return fmt.Errorf("%w: entry url: %v", ErrInvalidRemote, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: entry url %q is not absolute", ErrInvalidRemote, d.EntryURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidRemote, u.Scheme)
	}
	if d.ExposedKey == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRemote, ErrEmptyExposedKey)
	}
	if d.Timeout <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRemote, ErrInvalidTimeout)
	}
	return nil
}

// label returns the name used in logs.
func (d RemoteDescriptor) label() string {
	if d.Name != "" {
		return d.Name
	}
	return d.EntryURL
}

// RouteEntry is a single route or feature entry exported by a remote. Its
// shape is opaque to this package.
type RouteEntry = any

// FallbackRoutes returns the single empty route used when a remote fails.
func FallbackRoutes() []RouteEntry {
	return []RouteEntry{map[string]any{"path": ""}}
}

// ModuleRequest is passed to a ModuleLoader.
type ModuleRequest struct {
	Kind       string
	Entry      string
	ExposedKey string
}

// ModuleRecord is the raw value resolved from a remote's exposed module.
type ModuleRecord map[string]any

// LoadOutcome is the result of a single Load call. Fallback is set exactly
// when Err is non-nil.
type LoadOutcome struct {
	Name     string
	Routes   []RouteEntry
	Fallback bool
	Err      error
	Elapsed  time.Duration
}

// Link is a stylesheet link node.
type Link struct {
	// Href is the URL the link points at, including any cache-busting query.
	Href string `json:"href"`
	// Key is the dedup key: origin and path, no query.
	Key string `json:"key"`
}

// ModuleLoader resolves an exposed module from a remote entry script.
type ModuleLoader interface {
	LoadModule(ctx context.Context, req ModuleRequest) (ModuleRecord, error)
}

// ModuleLoaderFunc adapts a function to ModuleLoader.
type ModuleLoaderFunc func(ctx context.Context, req ModuleRequest) (ModuleRecord, error)

// LoadModule calls f.
func (f ModuleLoaderFunc) LoadModule(ctx context.Context, req ModuleRequest) (ModuleRecord, error) {
	return f(ctx, req)
}

// StylesheetInserter inserts a stylesheet link and reports whether it loaded.
type StylesheetInserter interface {
	Insert(ctx context.Context, link Link) error
}

// JSONFetcher fetches and decodes a JSON document with caching disabled.
type JSONFetcher interface {
	FetchJSON(ctx context.Context, url string) (any, error)
}

// Observer receives load and stylesheet events. Implementations must be
// safe for concurrent use.
type Observer interface {
	LoadFinished(outcome LoadOutcome)
	StylesheetInserted(link Link, err error)
}

type nopObserver struct{}

func (nopObserver) LoadFinished(LoadOutcome)       {}
func (nopObserver) StylesheetInserted(Link, error) {}
