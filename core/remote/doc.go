// Package remote loads independently deployed feature modules ("remotes") at
// runtime by URL.
//
// A remote publishes an entry script (remoteEntry.js or remoteEntry.mjs) and,
// next to it, a small stylesheet manifest. The Loader composes three steps:
//
//   - Stylesheets are resolved in the background: the manifest at
//     ManifestPath is tried first, and when it is missing or malformed a
//     single stable stylesheet (FallbackStylesheetPath) is loaded with a
//     cache-busting query. Style failures are logged and never affect routing.
//   - The remote module is loaded through an injected ModuleLoader, bounded by
//     a deadline (WithDeadline). The deadline only stops waiting; it does not
//     abort the underlying load.
//   - The loaded record is validated to export a sequence of route entries.
//
// Every failure converges to FallbackRoutes, a single empty route, so the
// host keeps its outlet mounted.
//
// # Capabilities
//
// The package performs no I/O itself. Callers inject:
//
//	type ModuleLoader interface {
//	    LoadModule(ctx context.Context, req ModuleRequest) (ModuleRecord, error)
//	}
//
//	type StylesheetInserter interface {
//	    Insert(ctx context.Context, link Link) error
//	}
//
//	type JSONFetcher interface {
//	    FetchJSON(ctx context.Context, url string) (any, error)
//	}
//
// Production implementations live in core/jsloader, core/document and
// core/fetch.
//
// # Usage
//
//	dedup := remote.NewDeduplicator(head.Inserter(client), remote.NewLinkRegistry())
//	styles := remote.NewStyleResolver(client, dedup, logg)
//	l := remote.NewLoader(jsloader.New(client, cfg.Script, logg), styles, remote.WithLogger(logg))
//
//	routes := l.LoadRemoteFeature(ctx, remote.RemoteDescriptor{
//	    EntryURL:   "http://localhost:4201/remoteEntry.js",
//	    ExposedKey: "./Module",
//	})
package remote
