package hbstatus

// Classify maps a log line to the status it announces. Lines without a
// marker leave the status unchanged, so previous is returned.
func Classify(line string, previous Status) Status {
	status, _ := classify(line, previous)
	return status
}

func classify(line string, previous Status) (Status, bool) {
	for _, rule := range markerRules {
		if LineContains(line, rule.phrases) {
			return rule.status, true
		}
	}
	return previous, false
}

// Signal is everything a single activity log line contributes.
type Signal struct {
	Status Status
	// Marked is set when the line itself carries a status marker.
	Marked bool

	// EncodeStart is set only when the line itself carries the
	// "started encoding" marker. A Ripping status without it is carried
	// over from an earlier line.
	EncodeStart bool
	Checkpoint  bool

	Chapters    int
	HasChapters bool
	Frames      int
	HasFrames   bool
}

// Inspect classifies line and extracts its auxiliary progress signals.
func Inspect(line string, previous Status) Signal {
	status, marked := classify(line, previous)
	sig := Signal{
		Status:      status,
		Marked:      marked,
		EncodeStart: IsEncodeStart(line),
	}
	if chapters, ok := DeclaredChapters(line); ok {
		sig.Chapters, sig.HasChapters = chapters, true
	} else if frames, ok := DeclaredFrames(line); ok {
		sig.Frames, sig.HasFrames = frames, true
	} else if IsCheckpoint(line) {
		sig.Checkpoint = true
	}
	return sig
}

// Significant reports whether line changes anything the status machine
// tracks: a phase marker, a declared total, or a chapter checkpoint.
func (s Signal) Significant() bool {
	return s.Marked || s.Checkpoint || s.HasChapters || s.HasFrames
}
