package activitylog

import (
	"hbcheckup/internal/hbstatus"
)

// State is the interpreter's view of the activity log after some prefix of
// its lines.
type State struct {
	Status        hbstatus.Status
	CurrentEncode string
	StartTime     string
	EndTime       string

	// TotalChapters and TotalFrames are the declared work units of the
	// current title; zero when the log has not declared them yet.
	TotalChapters int
	TotalFrames   int

	// Checkpoints holds every chapter sync line of the current rip verbatim.
	Checkpoints []string

	// ETA is provisional while lines are being fed; the estimator replaces
	// it once the scan finishes.
	ETA string
}

// Machine folds activity log lines into a State. A Machine is not safe for
// concurrent use; every scan owns its own.
type Machine struct {
	state State
}

// NewMachine returns a machine in the idle state.
func NewMachine() *Machine {
	m := &Machine{}
	m.reset()
	return m
}

func (m *Machine) reset() {
	m.state = State{Status: hbstatus.QueueComplete}
}

// Feed applies a single line.
func (m *Machine) Feed(line string) {
	sig := hbstatus.Inspect(line, m.state.Status)

	// progress signals are recorded before the status transition so a reset
	// on this line discards them along with everything else
	switch {
	case sig.HasChapters:
		m.state.TotalChapters = sig.Chapters
	case sig.HasFrames:
		m.state.TotalFrames = sig.Frames
	case sig.Checkpoint:
		m.state.Checkpoints = append(m.state.Checkpoints, line)
	}

	switch sig.Status {
	case hbstatus.Scanning, hbstatus.ScanComplete:
		m.reset()
	case hbstatus.Ripping:
		if !sig.EncodeStart {
			break
		}
		m.reset()
		m.state.StartTime = ClockField(line)
		m.state.CurrentEncode, _ = hbstatus.EncodeName(line)
	case hbstatus.RippingSubScan, hbstatus.RippingEncoding:
		m.state.ETA = ETAPending
	case hbstatus.QueueComplete:
		m.state.EndTime = ClockField(line)
	}

	m.state.Status = sig.Status
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	out := m.state
	if len(m.state.Checkpoints) > 0 {
		out.Checkpoints = make([]string, len(m.state.Checkpoints))
		copy(out.Checkpoints, m.state.Checkpoints)
	}
	return out
}
