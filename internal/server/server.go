package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"hbcheckup/internal/activitylog"
	"hbcheckup/internal/api"
	"hbcheckup/internal/config"
	"hbcheckup/internal/logging"
	"hbcheckup/internal/peers"
)

// ErrAlreadyRunning is returned by Run when another server holds the lock for
// the same port.
var ErrAlreadyRunning = errors.New("hbcheckup server already running")

// Scanner produces a fresh snapshot of the local activity log.
type Scanner interface {
	Scan() (activitylog.Snapshot, error)
}

// PeerSource gathers checkup documents from sibling hosts.
type PeerSource interface {
	FetchAll(ctx context.Context) []api.PeerStatus
}

// Server serves the checkup endpoints and the dashboard page.
type Server struct {
	addr     string
	token    string
	lockPath string
	scanner  Scanner
	peers    PeerSource
	hostname func() (string, error)
	logger   *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

// Option customizes a Server.
type Option func(*Server)

// WithScanner replaces the activity log reader.
func WithScanner(scanner Scanner) Option {
	return func(s *Server) {
		if scanner != nil {
			s.scanner = scanner
		}
	}
}

// WithPeers replaces the peer fetcher.
func WithPeers(source PeerSource) Option {
	return func(s *Server) {
		if source != nil {
			s.peers = source
		}
	}
}

// WithHostname overrides how the local host name is resolved.
func WithHostname(fn func() (string, error)) Option {
	return func(s *Server) {
		if fn != nil {
			s.hostname = fn
		}
	}
}

// New builds a server from configuration. The log reader and peer fetcher are
// derived from cfg unless replaced through options.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: config is required")
	}
	s := &Server{
		addr:     cfg.ListenAddress(),
		token:    strings.TrimSpace(cfg.APIToken),
		lockPath: cfg.LockPath(),
		hostname: os.Hostname,
		logger:   logging.NewComponentLogger(logger, "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scanner == nil {
		est, err := activitylog.EstimatorFor(cfg.Estimator)
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.scanner = activitylog.NewReader(cfg.HandbrakePath, activitylog.WithEstimator(est))
	}
	if s.peers == nil {
		s.peers = peers.NewFromConfig(cfg, logger)
	}
	return s, nil
}

// Handler returns the routed handler with request ids and auth applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/checkup", authMiddleware(s.token, s.handleCheckup))
	mux.HandleFunc("/checkup-all", authMiddleware(s.token, s.handleCheckupAll))
	mux.HandleFunc("/{$}", authMiddleware(s.token, s.handleDashboard))
	return requestIDMiddleware(s.logger, mux)
}

// Run holds the single-instance lock and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lock, err := acquireLock(s.lockPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logging.WarnWithContext(s.logger, "failed to release server lock", "lock_release_failed",
				logging.String("lock", s.lockPath),
				logging.Error(err),
			)
		}
	}()

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.mu.Lock()
	s.listener = listener
	s.server = httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()
	s.logger.Info("checkup server listening",
		logging.String("address", listener.Addr().String()),
		logging.String("lock", s.lockPath),
	)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("checkup server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}

// Addr reports the bound address once Run is listening, otherwise the
// configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func acquireLock(path string) (*flock.Flock, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, path)
	}
	return lock, nil
}
