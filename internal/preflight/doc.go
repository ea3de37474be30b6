// Package preflight provides the readiness checks behind "hbcheckup doctor".
//
// Each check returns a Result rather than an error so the CLI can print every
// problem at once: an unreadable activity log, a state directory the lock file
// cannot live in, a port already taken, or a peer that does not answer.
package preflight
