package remote

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var entryScriptPattern = regexp.MustCompile(`(?i)remoteEntry\.m?js(?:[?#].*)?$`)

// ResolveBase derives a remote's asset base directory from its entry-script
// URL. The result always ends in "/".
//
//	ResolveBase("http://localhost:4201/remoteEntry.js") // "http://localhost:4201/"
func ResolveBase(entryURL string) string {
	base := entryScriptPattern.ReplaceAllString(entryURL, "")
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// resolveAgainst resolves ref relative to base.
func resolveAgainst(base *url.URL, ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidURL, ref, err)
	}
	return base.ResolveReference(r).String(), nil
}

// StylesheetKey returns the dedup key for an absolute stylesheet URL:
// origin plus path, without query or fragment. The origin is normalized the
// way browsers serialize it: lowercase scheme and host, default port dropped.
func StylesheetKey(u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return origin(u) + path
}

var defaultPorts = map[string]string{"http": "80", "https": "443"}

func origin(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port := u.Port(); port != "" && port != defaultPorts[scheme] {
		host += ":" + port
	}
	return scheme + "://" + host
}
