// Package services holds the small cross-cutting helpers shared by the server,
// the peer fetcher, and the CLI: request-id context plumbing and the sentinel
// error markers used to classify failures.
package services
