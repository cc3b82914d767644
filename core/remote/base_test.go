package remote_test

import (
	"net/url"
	"testing"

	"remote-loader/core/remote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBase(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		want  string
	}{
		{"JS", "http://localhost:4201/remoteEntry.js", "http://localhost:4201/"},
		{"MJS", "http://localhost:4201/remoteEntry.mjs", "http://localhost:4201/"},
		{"Nested", "https://cdn.example.com/scheduling/v2/remoteEntry.js", "https://cdn.example.com/scheduling/v2/"},
		{"Query", "http://x/remoteEntry.js?v=123", "http://x/"},
		{"Fragment", "http://x/app/remoteEntry.mjs#main", "http://x/app/"},
		{"CaseInsensitive", "http://x/RemoteEntry.JS", "http://x/"},
		{"NoEntryScript", "http://x/app", "http://x/app/"},
		{"AlreadyDirectory", "http://x/app/", "http://x/app/"},
		{"OtherScript", "http://x/main.js", "http://x/main.js/"},
		{"Garbage", "not a url", "not a url/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, remote.ResolveBase(tt.entry))
		})
	}
}

func TestStylesheetKey(t *testing.T) {
	u, err := url.Parse("http://x:8080/assets/style.css?v=1#top")
	require.NoError(t, err)
	assert.Equal(t, "http://x:8080/assets/style.css", remote.StylesheetKey(u))

	u, err = url.Parse("http://x")
	require.NoError(t, err)
	assert.Equal(t, "http://x/", remote.StylesheetKey(u))
}

func TestStylesheetKey_Origin(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"DefaultHTTPPort", "http://X:80/a.css", "http://x/a.css"},
		{"DefaultHTTPSPort", "HTTPS://Cdn.Example.com:443/a.css", "https://cdn.example.com/a.css"},
		{"HTTPSPortOnHTTP", "http://x:443/a.css", "http://x:443/a.css"},
		{"CustomPort", "http://X:4201/a.css", "http://x:4201/a.css"},
		{"IPv6", "http://[::1]:80/a.css", "http://[::1]/a.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, remote.StylesheetKey(u))
		})
	}
}

func TestLinkRegistry(t *testing.T) {
	r := remote.NewLinkRegistry()

	assert.True(t, r.Claim("http://x/b.css"))
	assert.False(t, r.Claim("http://x/b.css"))
	assert.True(t, r.Claim("http://x/a.css"))

	assert.True(t, r.Has("http://x/a.css"))
	assert.False(t, r.Has("http://x/c.css"))
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"http://x/a.css", "http://x/b.css"}, r.Keys())
}
