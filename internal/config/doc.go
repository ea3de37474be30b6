// Package config loads, normalizes, and validates hbcheckup configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the HBCHECKUP_HANDBRAKE_PATH
// environment override. Peer URLs are normalized here so the aggregator can
// call them verbatim.
package config
