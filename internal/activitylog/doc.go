// Package activitylog interprets a HandBrake activity log.
//
// A scan feeds every line, top to bottom, through a small state machine that
// tracks the current phase, the job being encoded, and the chapter sync
// checkpoints of the running rip. When the stream ends an Estimator turns the
// checkpoints into a time-remaining string. Nothing is cached between scans;
// HandBrake truncates the log between sessions, so a full pass stays cheap.
package activitylog
