package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"hbcheckup/internal/api"
	"hbcheckup/internal/hbstatus"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 12
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", value)
}

// statusLines renders one host the way `status` prints it.
func statusLines(status api.PeerStatus, colorize bool) []string {
	if !status.Success && status.Status == "" {
		return []string{renderStatusLine(status.Hostname, statusError, "activity log unreadable", colorize)}
	}
	lines := []string{renderStatusLine(status.Hostname, kindForStatus(status.Status), status.StatusText, colorize)}
	if status.CurrentEncode != "" {
		lines = append(lines, renderField("Encoding", status.CurrentEncode))
	}
	if status.StartTime != "" {
		lines = append(lines, renderField("Started", status.StartTime))
	}
	if status.EndTime != "" {
		lines = append(lines, renderField("Finished", status.EndTime))
	}
	if status.ETA != "" {
		lines = append(lines, renderField("ETA", status.ETA))
	}
	return lines
}

func kindForStatus(status hbstatus.Status) statusKind {
	switch {
	case status == hbstatus.PeerUnavailable:
		return statusError
	case status == hbstatus.Scanning:
		return statusWarn
	case status.Active():
		return statusOK
	default:
		return statusInfo
	}
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
