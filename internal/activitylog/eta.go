package activitylog

import (
	"fmt"
	"strings"
	"time"

	"hbcheckup/internal/hbstatus"
)

// Estimator extrapolates the seconds left in the running rip phase from the
// checkpoints of a finished scan. ok is false when the state does not carry
// enough information for this strategy.
type Estimator interface {
	Name() string
	Remaining(state State, now time.Time) (seconds float64, ok bool)
}

// ETA resolves the eta field of a snapshot. Idle and finished states are
// answered directly; active phases with at least two checkpoints are handed
// to est.
func ETA(state State, now time.Time, est Estimator) string {
	switch state.Status {
	case hbstatus.QueueComplete:
		return ETADone
	case hbstatus.RippingEncoding, hbstatus.RippingSubScan:
	default:
		return ""
	}
	if len(state.Checkpoints) < 2 {
		return ETAPending
	}
	if est == nil {
		est = ChapterEstimator{}
	}
	seconds, ok := est.Remaining(state, now)
	if !ok {
		return ETAPending
	}
	return FormatSeconds(seconds)
}

// ChapterEstimator assumes every remaining chapter takes the average time
// between the chapters seen so far.
type ChapterEstimator struct{}

func (ChapterEstimator) Name() string { return "chapter" }

func (ChapterEstimator) Remaining(state State, now time.Time) (float64, bool) {
	if state.TotalChapters <= 0 || len(state.Checkpoints) < 2 {
		return 0, false
	}
	instants, ok := checkpointInstants(state.Checkpoints, now)
	if !ok {
		return 0, false
	}

	var total float64
	for i := 1; i < len(instants); i++ {
		total += millis(instants[i].Sub(instants[i-1]))
	}
	avgInterval := total / float64(len(instants)-1)
	remainingUnits := float64(state.TotalChapters - len(instants))
	sinceLast := millis(now.Sub(instants[len(instants)-1]))

	return (avgInterval*remainingUnits - sinceLast) / 1000, true
}

// FrameEstimator assumes a constant time per frame measured from the first
// checkpoint to the latest one.
type FrameEstimator struct{}

func (FrameEstimator) Name() string { return "frame" }

func (FrameEstimator) Remaining(state State, now time.Time) (float64, bool) {
	if state.TotalFrames <= 0 || len(state.Checkpoints) < 2 {
		return 0, false
	}
	firstLine := state.Checkpoints[0]
	lastLine := state.Checkpoints[len(state.Checkpoints)-1]

	first, err := ParseClock(ClockField(firstLine), now)
	if err != nil {
		return 0, false
	}
	last, err := ParseClock(ClockField(lastLine), now)
	if err != nil {
		return 0, false
	}
	lastFrame, ok := hbstatus.CheckpointFrame(lastLine)
	if !ok || lastFrame <= 0 {
		return 0, false
	}

	timePerFrame := millis(last.Sub(first)) / float64(lastFrame)
	remainingFrames := float64(state.TotalFrames - lastFrame)
	sinceLast := millis(now.Sub(last))

	return (timePerFrame*remainingFrames - sinceLast) / 1000, true
}

// EstimatorFor returns the estimator registered under name.
func EstimatorFor(name string) (Estimator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "chapter":
		return ChapterEstimator{}, nil
	case "frame":
		return FrameEstimator{}, nil
	default:
		return nil, fmt.Errorf("unknown estimator %q", name)
	}
}

func checkpointInstants(lines []string, now time.Time) ([]time.Time, bool) {
	instants := make([]time.Time, 0, len(lines))
	for _, line := range lines {
		instant, err := ParseClock(ClockField(line), now)
		if err != nil {
			return nil, false
		}
		instants = append(instants, instant)
	}
	return instants, true
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
