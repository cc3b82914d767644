package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
)

// Deduplicator inserts each logical stylesheet at most once.
type Deduplicator struct {
	inserter StylesheetInserter
	registry *LinkRegistry
	observer Observer
	now      func() time.Time
	sf       singleflight.Group
}

// NewDeduplicator creates a Deduplicator backed by registry. A nil registry
// gets a fresh one.
func NewDeduplicator(inserter StylesheetInserter, registry *LinkRegistry) *Deduplicator {
	if registry == nil {
		registry = NewLinkRegistry()
	}
	return &Deduplicator{
		inserter: inserter,
		registry: registry,
		observer: nopObserver{},
		now:      time.Now,
	}
}

// SetObserver attaches an observer for insert events.
func (d *Deduplicator) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	d.observer = o
}

// Registry returns the registry backing d.
func (d *Deduplicator) Registry() *LinkRegistry {
	return d.registry
}

// EnsureStylesheet inserts a link for absoluteURL unless one with the same
// origin and path was inserted before. When bust is set the href carries a
// timestamp query. Concurrent calls for the same key share one insert and
// all observe its outcome.
func (d *Deduplicator) EnsureStylesheet(ctx context.Context, absoluteURL string, bust bool) error {
	u, err := url.Parse(absoluteURL)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidURL, absoluteURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, absoluteURL)
	}

	key := StylesheetKey(u)
	if d.registry.Has(key) {
		return nil
	}

	_, err, _ = d.sf.Do(key, func() (any, error) {
		if !d.registry.Claim(key) {
			return nil, nil
		}

		link := Link{Href: u.String(), Key: key}
		if bust {
			link.Href = bustHref(u, d.now())
		}

		insertErr := d.inserter.Insert(ctx, link)
		d.observer.StylesheetInserted(link, insertErr)
		if insertErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrStylesheetLoad, link.Href, insertErr)
		}
		return nil, nil
	})
	return err
}

func bustHref(u *url.URL, now time.Time) string {
	c := *u
	c.Fragment, c.RawFragment = "", ""
	sep := "?"
	if c.RawQuery != "" {
		sep = "&"
	}
	return c.String() + sep + "v=" + strconv.FormatInt(now.UnixMilli(), 10)
}
