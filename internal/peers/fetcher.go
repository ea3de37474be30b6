package peers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff"

	"hbcheckup/internal/api"
	"hbcheckup/internal/config"
	"hbcheckup/internal/logging"
	"hbcheckup/internal/services"
)

const (
	defaultTimeout  = 5 * time.Second
	maxResponseSize = 1 << 20
)

// HTTPDoer describes the HTTP client used to reach peers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher collects checkup documents from sibling hosts.
type Fetcher struct {
	peers      []string
	client     HTTPDoer
	timeout    time.Duration
	retries    int
	token      string
	logger     *slog.Logger
	newBackOff func() backoff.BackOff
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithClient overrides the HTTP client.
func WithClient(client HTTPDoer) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithTimeout bounds each request attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithRetries sets how many extra attempts follow a retryable failure.
func WithRetries(retries int) Option {
	return func(f *Fetcher) {
		if retries >= 0 {
			f.retries = retries
		}
	}
}

// WithToken sends a bearer token with every request.
func WithToken(token string) Option {
	return func(f *Fetcher) {
		f.token = strings.TrimSpace(token)
	}
}

// WithLogger attaches a logger; records carry component=peers.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logging.NewComponentLogger(logger, "peers")
	}
}

// WithBackOff replaces the delay policy between attempts.
func WithBackOff(factory func() backoff.BackOff) Option {
	return func(f *Fetcher) {
		if factory != nil {
			f.newBackOff = factory
		}
	}
}

// NewFetcher builds a fetcher for the given /checkup URLs.
func NewFetcher(peers []string, opts ...Option) *Fetcher {
	f := &Fetcher{
		peers:   append([]string(nil), peers...),
		client:  http.DefaultClient,
		timeout: defaultTimeout,
		logger:  logging.NewComponentLogger(nil, "peers"),
	}
	f.newBackOff = f.exponentialBackOff
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewFromConfig wires peers, timeout, retries, and token from cfg.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Fetcher {
	if cfg == nil {
		return NewFetcher(nil, WithLogger(logger))
	}
	return NewFetcher(cfg.Peers,
		WithTimeout(time.Duration(cfg.Peer.TimeoutSeconds)*time.Second),
		WithRetries(cfg.Peer.Retries),
		WithToken(cfg.APIToken),
		WithLogger(logger),
	)
}

// Peers returns the configured peer URLs in order.
func (f *Fetcher) Peers() []string {
	return append([]string(nil), f.peers...)
}

// FetchAll queries every peer concurrently. The result has one entry per
// configured peer in configuration order; a peer that fails is reported as an
// unavailable placeholder, so FetchAll never fails as a whole.
func (f *Fetcher) FetchAll(ctx context.Context) []api.PeerStatus {
	results := make([]api.PeerStatus, len(f.peers))
	var wg sync.WaitGroup
	for i, peer := range f.peers {
		wg.Add(1)
		go func(i int, peer string) {
			defer wg.Done()
			status, err := f.Fetch(ctx, peer)
			if err != nil {
				logging.WarnWithContext(logging.WithContext(ctx, f.logger), "peer unavailable", "peer_unavailable",
					logging.String("peer", peer),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check that hbcheckup serve is running on the peer"),
					logging.String(logging.FieldImpact, "peer shown as unavailable"),
				)
				results[i] = api.Unavailable(peer)
				return
			}
			results[i] = status
		}(i, peer)
	}
	wg.Wait()
	return results
}

// Fetch queries a single peer, retrying transient failures.
func (f *Fetcher) Fetch(ctx context.Context, peerURL string) (api.PeerStatus, error) {
	var status api.PeerStatus
	attempt := 0
	operation := func() error {
		attempt++
		result, err := f.fetchOnce(ctx, peerURL)
		if err != nil {
			f.logger.Debug("peer attempt failed",
				logging.String("peer", peerURL),
				logging.Int("attempt", attempt),
				logging.Error(err),
			)
			if !services.Retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		status = result
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(f.newBackOff(), uint64(f.retries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return api.PeerStatus{}, err
	}
	return status, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, peerURL string) (api.PeerStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, peerURL, nil)
	if err != nil {
		return api.PeerStatus{}, services.Wrap(services.ErrConfiguration, "peers", "build request", peerURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return api.PeerStatus{}, services.Wrap(services.ErrUnavailable, "peers", "fetch", peerURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return api.PeerStatus{}, services.Wrap(services.ErrUnavailable, "peers", "fetch", fmt.Sprintf("%s returned %d", peerURL, resp.StatusCode), nil)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return api.PeerStatus{}, services.Wrap(services.ErrInvalidResponse, "peers", "fetch", fmt.Sprintf("%s returned %d", peerURL, resp.StatusCode), nil)
	}

	var status api.PeerStatus
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&status); err != nil {
		return api.PeerStatus{}, services.Wrap(services.ErrInvalidResponse, "peers", "decode", peerURL, err)
	}
	if status.Status != "" && !status.Status.Valid() {
		return api.PeerStatus{}, services.Wrap(services.ErrInvalidResponse, "peers", "decode", fmt.Sprintf("unknown status %q", status.Status), nil)
	}
	if strings.TrimSpace(status.Hostname) == "" {
		status.Hostname = peerURL
	}
	return status, nil
}

func (f *Fetcher) exponentialBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = f.timeout * time.Duration(f.retries+1)
	return b
}
