package preflight

import (
	"context"

	"hbcheckup/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every readiness check for the given config: the activity
// log, the state directory, the listen port, then each peer in order.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckActivityLog(cfg.HandbrakePath),
		CheckStateDir(cfg.StateDir),
		CheckPort(cfg.ListenAddress()),
	}
	for _, peer := range cfg.Peers {
		results = append(results, CheckPeer(ctx, peer, cfg.APIToken))
	}
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
