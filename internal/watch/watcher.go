package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"hbcheckup/internal/activitylog"
	"hbcheckup/internal/logging"
)

const (
	defaultMinInterval = time.Second
	defaultRefresh     = 30 * time.Second
)

// Scanner produces a fresh snapshot of the activity log.
type Scanner interface {
	Scan() (activitylog.Snapshot, error)
}

// Update is delivered whenever the snapshot or the scan error changes.
type Update struct {
	Snapshot activitylog.Snapshot
	Err      error
	At       time.Time
}

// Watcher rescans the activity log when it is written.
type Watcher struct {
	path    string
	scanner Scanner
	limiter *rate.Limiter
	refresh time.Duration
	logger  *slog.Logger
}

// Option customizes a Watcher.
type Option func(*Watcher)

// WithMinInterval caps how often a burst of writes triggers a rescan.
func WithMinInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// WithRefresh sets how often the log is rescanned without any write, which
// keeps the time-remaining estimate moving while HandBrake is quiet.
// Zero disables the periodic rescan.
func WithRefresh(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.refresh = d
		}
	}
}

// WithLogger attaches a logger; records carry component=watch.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logging.NewComponentLogger(logger, "watch")
	}
}

// New builds a watcher for the log at path.
func New(path string, scanner Scanner, opts ...Option) *Watcher {
	w := &Watcher{
		path:    path,
		scanner: scanner,
		limiter: rate.NewLimiter(rate.Every(defaultMinInterval), 1),
		refresh: defaultRefresh,
		logger:  logging.NewComponentLogger(nil, "watch"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run scans once, then again after every write to the log, emitting an Update
// whenever the result differs from the previous one. It returns when ctx is
// cancelled.
func (w *Watcher) Run(ctx context.Context, emit func(Update)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	// HandBrake recreates the log between sessions, so watch the directory.
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info("watching activity log", logging.String("path", w.path))

	trigger := make(chan struct{}, 1)
	poke := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}
	poke()

	var tick <-chan time.Time
	if w.refresh > 0 {
		ticker := time.NewTicker(w.refresh)
		defer ticker.Stop()
		tick = ticker.C
	}

	target := filepath.Clean(w.path)
	var last *Update
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) == target && event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				poke()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(w.logger, "file watcher error", "watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "updates may be delayed until the next refresh"),
			)
		case <-tick:
			poke()
		case <-trigger:
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			update := w.scan()
			if last == nil || changed(*last, update) {
				emit(update)
			}
			last = &update
		}
	}
}

func (w *Watcher) scan() Update {
	snap, err := w.scanner.Scan()
	if err != nil {
		w.logger.Debug("scan failed", logging.Error(err))
	}
	return Update{Snapshot: snap, Err: err, At: time.Now()}
}

func changed(prev, next Update) bool {
	if prev.Snapshot != next.Snapshot {
		return true
	}
	return errString(prev.Err) != errString(next.Err)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
