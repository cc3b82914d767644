// Package remotes serves the remote catalogue over HTTP.
//
// Remotes come from two places: the remotes list in config.yaml and, when a
// database is configured, the 'remotes' table. A stored remote replaces a
// configured one with the same name.
//
// # Endpoints
//
//   - GET /remotes: list the catalogue
//   - GET /remotes/:name/routes: load a remote and return its routes; an
//     unavailable remote answers 200 with the blank fallback route
//   - POST /remotes, DELETE /remotes/:name: manage stored remotes
//   - GET /stylesheets, GET /stylesheets.html: links inserted so far
//
// Route values are passed through Sanitize before encoding, since entry
// scripts may export functions.
package remotes
