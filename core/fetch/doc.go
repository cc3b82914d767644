// Package fetch is the HTTP client used to talk to remotes.
//
// It downloads stylesheet manifests (JSON), entry scripts (text) and checks
// stylesheet URLs. Every request is sent with caching disabled, since remotes
// are redeployed independently of the host and a stale manifest would point at
// hashed stylesheets that no longer exist.
//
// # Timeouts
//
// The transport applies the same strict dial, TLS and response-header
// timeouts the storage client uses, so an unreachable remote fails fast even
// when the caller's context has no deadline.
//
// # Usage
//
//	client := fetch.NewClient(cfg.Fetch)
//	doc, err := client.FetchJSON(ctx, "http://localhost:4201/assets/assets.json")
package fetch
