package activitylog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// ETAPending means a rip phase is running but there are not enough
	// checkpoints to extrapolate from yet.
	ETAPending = "~"
	// ETADone is reported once the queue has finished.
	ETADone = "00:00:00"
	// ETAAlmostDone is reported when the extrapolated finish is already past.
	ETAAlmostDone = "Almost done..."
)

// ClockField returns the HH:MM:SS stamp that HandBrake writes at the start of
// every activity line ("[00:43:52] ..."): the eight characters after the
// leading bracket. Lines too short to carry a stamp yield "".
func ClockField(line string) string {
	if len(line) < 9 {
		return ""
	}
	return line[1:9]
}

// ParseClock places an HH:MM:SS stamp on the calendar day of ref, in ref's
// location.
func ParseClock(clock string, ref time.Time) (time.Time, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("parse clock %q: expected HH:MM:SS", clock)
	}
	var fields [3]int
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse clock %q: %w", clock, err)
		}
		fields[i] = value
	}
	if fields[0] < 0 || fields[0] > 23 || fields[1] < 0 || fields[1] > 59 || fields[2] < 0 || fields[2] > 59 {
		return time.Time{}, fmt.Errorf("parse clock %q: out of range", clock)
	}
	year, month, day := ref.Date()
	return time.Date(year, month, day, fields[0], fields[1], fields[2], 0, ref.Location()), nil
}

// PadWithZeros renders n with at least two digits. Negative values pass
// through unpadded.
func PadWithZeros(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// FormatSeconds renders a remaining duration as HH:MM:SS, or ETAAlmostDone
// when it is negative. Hours are not capped.
func FormatSeconds(seconds float64) string {
	if seconds < 0 {
		return ETAAlmostDone
	}
	hours := math.Floor(seconds / 3600)
	minutes := math.Floor((seconds - hours*3600) / 60)
	secs := math.Floor(seconds - hours*3600 - minutes*60)
	return PadWithZeros(int(hours)) + ":" + PadWithZeros(int(minutes)) + ":" + PadWithZeros(int(secs))
}
