// Package hbstatus defines the HandBrake activity vocabulary: the status
// enumeration with its dashboard labels, the marker phrases written by the
// HandBrake queue and scan cores, and the line classifier that turns one log
// line into a status transition plus any progress signals it carries.
//
// The key/label tables are built once at package init and never mutated, so
// concurrent scans can share them freely.
package hbstatus
