package remote_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"remote-loader/core/remote"
	"remote-loader/core/remote/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func insertedHrefs(ins *mocks.StylesheetInserter) []string {
	var hrefs []string
	for _, c := range ins.Calls {
		hrefs = append(hrefs, c.Arguments.Get(1).(remote.Link).Href)
	}
	sort.Strings(hrefs)
	return hrefs
}

func TestLoadStyles(t *testing.T) {
	const entry = "http://x/remoteEntry.js"

	t.Run("ManifestPresent", func(t *testing.T) {
		fetcher := new(mocks.JSONFetcher)
		fetcher.On("FetchJSON", mock.Anything, "http://x/assets/assets.json").
			Return(map[string]any{"css": []any{"a.css", "b.css"}}, nil)
		ins := new(mocks.StylesheetInserter)
		ins.On("Insert", mock.Anything, mock.Anything).Return(nil)

		r := remote.NewStyleResolver(fetcher, remote.NewDeduplicator(ins, nil), zap.NewNop())
		err := r.LoadStyles(context.Background(), entry, "assets/assets.json", "assets/style.css")

		require.NoError(t, err)
		assert.Equal(t, []string{"http://x/a.css", "http://x/b.css"}, insertedHrefs(ins))
	})

	t.Run("ManifestAbsent", func(t *testing.T) {
		fetcher := new(mocks.JSONFetcher)
		fetcher.On("FetchJSON", mock.Anything, "http://x/assets/assets.json").
			Return(nil, errors.New("manifest 404"))
		ins := new(mocks.StylesheetInserter)
		ins.On("Insert", mock.Anything, mock.Anything).Return(nil)

		r := remote.NewStyleResolver(fetcher, remote.NewDeduplicator(ins, nil), zap.NewNop())
		err := r.LoadStyles(context.Background(), entry, "assets/assets.json", "assets/style.css")

		require.NoError(t, err)
		hrefs := insertedHrefs(ins)
		require.Len(t, hrefs, 1)
		assert.True(t, strings.HasPrefix(hrefs[0], "http://x/assets/style.css?v="), hrefs[0])
	})

	t.Run("MalformedManifestsFallBack", func(t *testing.T) {
		docs := map[string]any{
			"NotObject":  []any{"a.css"},
			"MissingCSS": map[string]any{"js": []any{"a.js"}},
			"EmptyCSS":   map[string]any{"css": []any{}},
			"CSSString":  map[string]any{"css": "a.css"},
			"OnlyNumber": map[string]any{"css": []any{float64(1)}},
		}
		for name, doc := range docs {
			t.Run(name, func(t *testing.T) {
				fetcher := new(mocks.JSONFetcher)
				fetcher.On("FetchJSON", mock.Anything, mock.Anything).Return(doc, nil)
				ins := new(mocks.StylesheetInserter)
				ins.On("Insert", mock.Anything, mock.Anything).Return(nil)

				r := remote.NewStyleResolver(fetcher, remote.NewDeduplicator(ins, nil), zap.NewNop())
				require.NoError(t, r.LoadStyles(context.Background(), entry, "assets/assets.json", "assets/style.css"))

				hrefs := insertedHrefs(ins)
				require.Len(t, hrefs, 1)
				assert.Contains(t, hrefs[0], "assets/style.css?v=")
			})
		}
	})

	t.Run("PartialFailureDoesNotAbortSiblings", func(t *testing.T) {
		fetcher := new(mocks.JSONFetcher)
		fetcher.On("FetchJSON", mock.Anything, mock.Anything).
			Return(map[string]any{"css": []any{"bad.css", "good.css"}}, nil)
		ins := new(mocks.StylesheetInserter)
		ins.On("Insert", mock.Anything, mock.MatchedBy(func(l remote.Link) bool {
			return strings.HasSuffix(l.Href, "bad.css")
		})).Return(errors.New("boom"))
		ins.On("Insert", mock.Anything, mock.Anything).Return(nil)

		r := remote.NewStyleResolver(fetcher, remote.NewDeduplicator(ins, nil), zap.NewNop())
		err := r.LoadStyles(context.Background(), entry, "assets/assets.json", "assets/style.css")

		require.NoError(t, err)
		assert.Equal(t, []string{"http://x/bad.css", "http://x/good.css"}, insertedHrefs(ins))
	})

	t.Run("FallbackFailureReturned", func(t *testing.T) {
		fetcher := new(mocks.JSONFetcher)
		fetcher.On("FetchJSON", mock.Anything, mock.Anything).Return(nil, errors.New("offline"))
		ins := new(mocks.StylesheetInserter)
		ins.On("Insert", mock.Anything, mock.Anything).Return(errors.New("offline"))

		r := remote.NewStyleResolver(fetcher, remote.NewDeduplicator(ins, nil), zap.NewNop())
		err := r.LoadStyles(context.Background(), entry, "assets/assets.json", "assets/style.css")

		assert.ErrorIs(t, err, remote.ErrStylesheetLoad)
	})

	t.Run("ResolvesAgainstNestedBase", func(t *testing.T) {
		fetcher := new(mocks.JSONFetcher)
		fetcher.On("FetchJSON", mock.Anything, "https://cdn.test/mfe/assets/assets.json").
			Return(map[string]any{"css": []any{"styles.3f2a.css"}}, nil)
		ins := new(mocks.StylesheetInserter)
		ins.On("Insert", mock.Anything, mock.Anything).Return(nil)

		r := remote.NewStyleResolver(fetcher, remote.NewDeduplicator(ins, nil), nil)
		require.NoError(t, r.LoadStyles(context.Background(), "https://cdn.test/mfe/remoteEntry.mjs?x=1", "assets/assets.json", "assets/style.css"))

		assert.Equal(t, []string{"https://cdn.test/mfe/styles.3f2a.css"}, insertedHrefs(ins))
	})
}
