package testsupport

import (
	"path/filepath"
	"testing"

	"hbcheckup/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose activity log and state directory live in
// a per-test temp directory. The log file itself is only created by WithLog.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.HandbrakePath = filepath.Join(base, "HandBrake-activitylog.txt")
	cfgVal.StateDir = filepath.Join(base, "state")
	cfgVal.Bind = "127.0.0.1"
	cfgVal.Peers = nil

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithLog writes lines to the config's activity log.
func WithLog(lines ...string) ConfigOption {
	return func(b *configBuilder) {
		WriteLog(b.t, b.cfg.HandbrakePath, lines...)
	}
}

// WithPeers sets the peer list, normalizing each URL the way Load does.
func WithPeers(urls ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Peers = b.cfg.Peers[:0]
		for _, u := range urls {
			b.cfg.Peers = append(b.cfg.Peers, config.NormalizePeerURL(u))
		}
	}
}

// WithToken sets the shared API token.
func WithToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.APIToken = token
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.HandbrakePath)
}
