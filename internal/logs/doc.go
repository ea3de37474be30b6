// Package logs reads the tail of the HandBrake activity log for the
// "hbcheckup log" command.
//
// Last keeps memory bounded with a ring of the final N lines. ReadFrom and
// Follow pick up from a byte offset and restart from the top when HandBrake
// truncates the file for a new session.
package logs
