package activitylog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"hbcheckup/internal/hbstatus"
)

// ErrLogUnreadable marks failures to open or read the activity log.
var ErrLogUnreadable = errors.New("activity log unreadable")

// Snapshot is the result of one scan: the dashboard's view of a host.
type Snapshot struct {
	CurrentEncode string          `json:"currentEncode"`
	StartTime     string          `json:"startTime"`
	EndTime       string          `json:"endTime"`
	StatusText    string          `json:"statusText"`
	Status        hbstatus.Status `json:"status"`
	ETA           string          `json:"eta"`
}

// Reader scans a HandBrake activity log from the top on every call. It holds
// no state between scans, so one Reader may serve concurrent callers.
type Reader struct {
	path      string
	estimator Estimator
	now       func() time.Time
}

// Option customizes a Reader.
type Option func(*Reader)

// WithEstimator selects the ETA strategy. The chapter estimator is used by default.
func WithEstimator(est Estimator) Option {
	return func(r *Reader) {
		if est != nil {
			r.estimator = est
		}
	}
}

// WithClock overrides the wall clock used for ETA math.
func WithClock(now func() time.Time) Option {
	return func(r *Reader) {
		if now != nil {
			r.now = now
		}
	}
}

// NewReader returns a Reader for the activity log at path.
func NewReader(path string, opts ...Option) *Reader {
	r := &Reader{
		path:      path,
		estimator: ChapterEstimator{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the activity log location.
func (r *Reader) Path() string {
	return r.path
}

// Estimator returns the configured ETA strategy.
func (r *Reader) Estimator() Estimator {
	return r.estimator
}

// Scan reads the whole activity log and returns the resulting snapshot.
func (r *Reader) Scan() (Snapshot, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrLogUnreadable, err)
	}
	defer file.Close()

	return ScanReader(file, r.now(), r.estimator)
}

// maxLineBytes bounds how much of a single line is kept. Markers and clock
// stamps sit at the front of a line, so longer lines are truncated rather
// than rejected.
const maxLineBytes = 1024 * 1024

// ScanReader runs the interpreter over every line of src and computes the
// ETA against now.
func ScanReader(src io.Reader, now time.Time, est Estimator) (Snapshot, error) {
	machine := NewMachine()

	reader := bufio.NewReaderSize(src, 64*1024)
	line := make([]byte, 0, 4096)
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Snapshot{}, fmt.Errorf("%w: read: %w", ErrLogUnreadable, err)
		}
		if room := maxLineBytes - len(line); room > 0 {
			line = append(line, chunk[:min(len(chunk), room)]...)
		}
		if isPrefix {
			continue
		}
		machine.Feed(string(line))
		line = line[:0]
	}

	return Finalize(machine.State(), now, est), nil
}

// Finalize converts an interpreter state into a snapshot.
func Finalize(state State, now time.Time, est Estimator) Snapshot {
	label := state.Status.Label()
	status, ok := hbstatus.FromLabel(label)
	if !ok {
		status = state.Status
	}
	return Snapshot{
		CurrentEncode: state.CurrentEncode,
		StartTime:     state.StartTime,
		EndTime:       state.EndTime,
		StatusText:    label,
		Status:        status,
		ETA:           ETA(state, now, est),
	}
}
