package hbstatus

import (
	"regexp"
	"strconv"
	"strings"
)

// Marker phrases written to the HandBrake activity log. Some events are
// logged by either the queue core or the XPC service depending on the
// HandBrake build, so those carry both spellings.
var (
	EncodeStarted = []string{
		"QueueCore started encoding ",
		"fr.handbrake.HandBrakeXPCService started encoding ",
	}
	ScanStarted         = []string{"ScanCore trying to open a physical disc at"}
	QueueScannedReady   = []string{"ScanCore scan done"}
	SubScanStarted      = []string{"Starting Task: Subtitle Scan"}
	EncodingPassStarted = []string{"Starting Task: Encoding Pass"}
	QueueFinished       = []string{
		"QueueCore work done",
		"fr.handbrake.HandBrakeXPCService work done",
	}
)

var (
	chapterTotalPattern = regexp.MustCompile(`(?i)title \d{1,2}, chapter\(s\) 1 to (\d{1,2})`)
	frameTotalPattern   = regexp.MustCompile(`(?i)sync: expecting (\d+) video frames`)
	checkpointPattern   = regexp.MustCompile(`(?i)sync: "Chapter .* at frame`)
	frameCountPattern   = regexp.MustCompile(`frame (\d+)`)
)

// markerRules are evaluated in order; the first rule whose phrases appear in
// the line decides the status.
var markerRules = []struct {
	phrases []string
	status  Status
}{
	{EncodeStarted, Ripping},
	{ScanStarted, Scanning},
	{QueueScannedReady, ScanComplete},
	{SubScanStarted, RippingSubScan},
	{EncodingPassStarted, RippingEncoding},
	{QueueFinished, QueueComplete},
}

// LineContains reports whether line contains any of the phrases.
func LineContains(line string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(line, phrase) {
			return true
		}
	}
	return false
}

// IsEncodeStart reports whether line is the literal "started encoding" marker.
func IsEncodeStart(line string) bool {
	return LineContains(line, EncodeStarted)
}

// EncodeName returns the job name that follows the encode-started marker,
// without a trailing .m4v or .mp4 extension.
func EncodeName(line string) (string, bool) {
	for _, phrase := range EncodeStarted {
		idx := strings.Index(line, phrase)
		if idx < 0 {
			continue
		}
		name := line[idx+len(phrase):]
		if strings.HasSuffix(name, ".m4v") {
			name = strings.TrimSuffix(name, ".m4v")
		} else if strings.HasSuffix(name, ".mp4") {
			name = strings.TrimSuffix(name, ".mp4")
		}
		return name, true
	}
	return "", false
}

// DeclaredChapters extracts M from a "title N, chapter(s) 1 to M" line.
func DeclaredChapters(line string) (int, bool) {
	return submatchInt(chapterTotalPattern, line)
}

// DeclaredFrames extracts N from a "sync: expecting N video frames" line.
func DeclaredFrames(line string) (int, bool) {
	return submatchInt(frameTotalPattern, line)
}

// IsCheckpoint reports whether line is a chapter sync progress event.
func IsCheckpoint(line string) bool {
	return checkpointPattern.MatchString(line)
}

// CheckpointFrame extracts the frame counter from a checkpoint line.
func CheckpointFrame(line string) (int, bool) {
	return submatchInt(frameCountPattern, line)
}

func submatchInt(pattern *regexp.Regexp, line string) (int, bool) {
	match := pattern.FindStringSubmatch(line)
	if len(match) < 2 {
		return 0, false
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return value, true
}
