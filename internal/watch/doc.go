// Package watch drives "hbcheckup watch": it listens for writes to the
// activity log with fsnotify, throttles rescans with a token bucket, and
// reports only the snapshots that differ from the last one printed.
package watch
