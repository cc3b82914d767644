package remote

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"remote-loader/core/logger"

	"go.uber.org/zap"
)

// StyleResolver loads a remote's stylesheets: manifest first, stable
// fallback second.
type StyleResolver struct {
	fetcher JSONFetcher
	dedup   *Deduplicator
	log     *zap.Logger
}

// NewStyleResolver creates a StyleResolver.
func NewStyleResolver(fetcher JSONFetcher, dedup *Deduplicator, l *zap.Logger) *StyleResolver {
	return &StyleResolver{
		fetcher: fetcher,
		dedup:   dedup,
		log:     logger.Component(l, componentCSS),
	}
}

// LoadStyles inserts the stylesheets listed in the remote's manifest, or the
// cache-busted fallback stylesheet when the manifest is unusable. Failures of
// individual manifest entries are logged only. The returned error is advisory.
func (r *StyleResolver) LoadStyles(ctx context.Context, entryURL, manifestPath, fallbackPath string) error {
	base, err := url.Parse(ResolveBase(entryURL))
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidURL, entryURL, err)
	}

	files, err := r.fetchManifest(ctx, base, manifestPath)
	if err == nil {
		r.ensureAll(ctx, base, files)
		return nil
	}

	r.log.Warn("manifest missing → fallback", zap.String("entry", entryURL), zap.Error(err))
	fallback, err := resolveAgainst(base, fallbackPath)
	if err != nil {
		return err
	}
	return r.dedup.EnsureStylesheet(ctx, fallback, true)
}

func (r *StyleResolver) fetchManifest(ctx context.Context, base *url.URL, manifestPath string) ([]string, error) {
	if r.fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher", ErrManifest)
	}
	manifestURL, err := resolveAgainst(base, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}

	doc, err := r.fetcher.FetchJSON(ctx, manifestURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: manifest is not an object", ErrManifest)
	}
	entries, ok := obj["css"].([]any)
	if !ok || len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty css array", ErrManifest)
	}

	files := make([]string, 0, len(entries))
	for i, e := range entries {
		s, ok := e.(string)
		if !ok || s == "" {
			r.log.Warn("skipping non-string css entry", zap.Int("index", i), zap.Any("value", e))
			continue
		}
		files = append(files, s)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no usable css entries", ErrManifest)
	}
	return files, nil
}

func (r *StyleResolver) ensureAll(ctx context.Context, base *url.URL, files []string) {
	var wg sync.WaitGroup
	for _, file := range files {
		abs, err := resolveAgainst(base, file)
		if err != nil {
			r.log.Warn("stylesheet skipped", zap.String("file", file), zap.Error(err))
			continue
		}

		wg.Add(1)
		go func(abs string) {
			defer wg.Done()
			if err := r.dedup.EnsureStylesheet(ctx, abs, false); err != nil {
				r.log.Warn("stylesheet failed", zap.String("href", abs), zap.Error(err))
			}
		}(abs)
	}
	wg.Wait()
}
