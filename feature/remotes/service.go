package remotes

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"remote-loader/core/document"
	"remote-loader/core/remote"

	"go.uber.org/zap"
)

// Sentinel errors for the remote catalogue.
var (
	ErrUnknownRemote = errors.New("remotes: unknown remote")
	ErrNoStore       = errors.New("remotes: catalogue database not configured")
	ErrUnnamed       = errors.New("remotes: name is required")
)

// DefaultExposedKey is used for ad-hoc loads by URL without an explicit key.
const DefaultExposedKey = "./Module"

// Service resolves catalogue entries and loads them.
type Service struct {
	loader   *remote.Loader
	head     *document.Head
	store    *Store
	static   []remote.Definition
	defaults remote.Config
	logger   *zap.Logger
}

// NewService creates a new remote catalogue service. store may be nil, in
// which case only the static definitions are served and writes fail with
// ErrNoStore.
func NewService(loader *remote.Loader, head *document.Head, store *Store, static []remote.Definition, defaults remote.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		loader:   loader,
		head:     head,
		store:    store,
		static:   static,
		defaults: defaults,
		logger:   logger,
	}
}

// Remotes returns the configured definitions merged with the stored ones,
// ordered by name. A stored definition replaces a configured one of the same
// name.
func (s *Service) Remotes(ctx context.Context) ([]remote.Definition, error) {
	byName := make(map[string]remote.Definition, len(s.static))
	for _, d := range s.static {
		byName[d.Name] = d
	}

	if s.store != nil {
		stored, err := s.store.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, d := range stored {
			byName[d.Name] = d
		}
	}

	defs := make([]remote.Definition, 0, len(byName))
	for _, d := range byName {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}

// Find returns the definition named name.
func (s *Service) Find(ctx context.Context, name string) (remote.Definition, error) {
	if s.store != nil {
		d, err := s.store.Get(ctx, name)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, ErrUnknownRemote) {
			return remote.Definition{}, err
		}
	}

	for _, d := range s.static {
		if d.Name == name {
			return d, nil
		}
	}
	return remote.Definition{}, fmt.Errorf("%w: %s", ErrUnknownRemote, name)
}

// Resolve turns a catalogue name or an entry URL into a definition. A
// non-empty key overrides the exposed key.
func (s *Service) Resolve(ctx context.Context, ref, key string) (remote.Definition, error) {
	var d remote.Definition
	if strings.Contains(ref, "://") {
		d = remote.Definition{EntryURL: ref, ExposedKey: DefaultExposedKey}
	} else {
		found, err := s.Find(ctx, ref)
		if err != nil {
			return remote.Definition{}, err
		}
		d = found
	}

	if key != "" {
		d.ExposedKey = key
	}
	return d, nil
}

// Descriptor applies the loader defaults to d.
func (s *Service) Descriptor(d remote.Definition) remote.RemoteDescriptor {
	return d.Descriptor(s.defaults)
}

// Load loads the remote described by d. It never fails; the outcome carries
// the fallback reason.
func (s *Service) Load(ctx context.Context, d remote.Definition) remote.LoadOutcome {
	return s.loader.Load(ctx, s.Descriptor(d))
}

// Save validates and stores d.
func (s *Service) Save(ctx context.Context, d remote.Definition) error {
	if s.store == nil {
		return ErrNoStore
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: %w", remote.ErrInvalidRemote, ErrUnnamed)
	}
	if err := s.Descriptor(d).Validate(); err != nil {
		return err
	}
	if err := s.store.Save(ctx, d); err != nil {
		return err
	}
	s.logger.Info("Remote saved", zap.String("remote", d.Name), zap.String("entry", d.EntryURL))
	return nil
}

// Delete removes the stored definition named name.
func (s *Service) Delete(ctx context.Context, name string) error {
	if s.store == nil {
		return ErrNoStore
	}
	if err := s.store.Delete(ctx, name); err != nil {
		return err
	}
	s.logger.Info("Remote deleted", zap.String("remote", name))
	return nil
}

// Stylesheets returns the stylesheet links inserted so far.
func (s *Service) Stylesheets() []remote.Link {
	if s.head == nil {
		return []remote.Link{}
	}
	return s.head.Links()
}

// StylesheetsHTML renders the inserted links as <link> tags.
func (s *Service) StylesheetsHTML() template.HTML {
	if s.head == nil {
		return ""
	}
	return s.head.Render()
}
