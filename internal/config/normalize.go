package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePeers()
	c.normalizeServer()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("HBCHECKUP_HANDBRAKE_PATH"); ok && strings.TrimSpace(value) != "" {
		c.HandbrakePath = value
	}
	if strings.TrimSpace(c.HandbrakePath) == "" {
		c.HandbrakePath = defaultHandbrakePath
	}
	var err error
	if c.HandbrakePath, err = expandPath(strings.TrimSpace(c.HandbrakePath)); err != nil {
		return fmt.Errorf("handbrakePath: %w", err)
	}
	if strings.TrimSpace(c.StateDir) == "" {
		c.StateDir = defaultStateDir
	}
	if c.StateDir, err = expandPath(strings.TrimSpace(c.StateDir)); err != nil {
		return fmt.Errorf("stateDir: %w", err)
	}
	return nil
}

func (c *Config) normalizePeers() {
	if c.Peer.TimeoutSeconds <= 0 {
		c.Peer.TimeoutSeconds = defaultPeerTimeoutSeconds
	}
	if c.Peer.Retries < 0 {
		c.Peer.Retries = 0
	}
	if len(c.Peers) == 0 {
		c.Peers = nil
		return
	}
	peers := make([]string, 0, len(c.Peers))
	seen := make(map[string]struct{}, len(c.Peers))
	for _, peer := range c.Peers {
		normalized := NormalizePeerURL(peer)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		peers = append(peers, normalized)
	}
	c.Peers = peers
}

func (c *Config) normalizeServer() {
	if c.ServerPort == 0 {
		c.ServerPort = defaultServerPort
	}
	c.Bind = strings.TrimSpace(c.Bind)
	c.APIToken = strings.TrimSpace(c.APIToken)
	c.Estimator = strings.ToLower(strings.TrimSpace(c.Estimator))
	if c.Estimator == "" {
		c.Estimator = defaultEstimator
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
