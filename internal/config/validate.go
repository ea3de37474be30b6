package config

import (
	"errors"
	"fmt"
	"net/url"

	"hbcheckup/internal/services"
)

// Validate ensures the configuration is usable. Failures match
// services.ErrConfiguration.
func (c *Config) Validate() error {
	for _, check := range []func() error{c.validateServer, c.validatePeers, c.validateEstimator} {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", services.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.HandbrakePath == "" {
		return errors.New("handbrakePath must be set")
	}
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("serverPort must be between 1 and 65535, got %d", c.ServerPort)
	}
	return nil
}

func (c *Config) validatePeers() error {
	for _, peer := range c.Peers {
		parsed, err := url.Parse(peer)
		if err != nil {
			return fmt.Errorf("peers: invalid url %q: %w", peer, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("peers: url %q must use http or https", peer)
		}
		if parsed.Host == "" {
			return fmt.Errorf("peers: url %q has no host", peer)
		}
	}
	return nil
}

func (c *Config) validateEstimator() error {
	switch c.Estimator {
	case EstimatorChapter, EstimatorFrame:
		return nil
	default:
		return fmt.Errorf("estimator must be %q or %q, got %q", EstimatorChapter, EstimatorFrame, c.Estimator)
	}
}
