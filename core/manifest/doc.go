// Package manifest builds and publishes the stylesheet manifest of a remote.
//
// A remote declares its stylesheets in assets/assets.json next to its entry
// script:
//
//	{
//	  "css": ["assets/style.css"]
//	}
//
// The host reads this document through remote.StyleResolver. This package is
// the producer side: it inspects a build output directory, picks the main
// stylesheet and writes the manifest, optionally uploading both to a bucket.
//
// # Selection
//
// Select prefers assets/style.css. Otherwise it takes the first top-level file
// matching style[.hash].css, then styles[.hash].css, then any top-level .css.
// A build without stylesheets yields an empty list.
//
// # Usage
//
//	m, err := manifest.Write("dist/scheduling-mfe/browser")
//	m, err = manifest.Publish(ctx, client, "remotes", "scheduling", distDir)
package manifest
