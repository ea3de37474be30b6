// Package server exposes the checkup endpoints and the dashboard page.
//
// GET /checkup scans the local activity log and answers with one PeerStatus.
// GET /checkup-all answers with this host followed by every configured peer.
// GET / renders the same rows as HTML. Every request carries an X-Request-ID
// that is threaded into log records; an optional bearer token guards all
// routes. Run holds a file lock per port so two servers cannot share one.
package server
