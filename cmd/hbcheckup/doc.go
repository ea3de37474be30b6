// Package main hosts the hbcheckup CLI.
//
// serve runs the checkup HTTP server; status, fleet, watch, and log read the
// local activity log or the peers directly from the terminal; doctor and
// config help with setup. Configuration is loaded once per invocation through
// commandContext and shared by every subcommand.
package main
