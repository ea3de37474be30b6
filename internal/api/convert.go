package api

import (
	"strings"

	"hbcheckup/internal/activitylog"
	"hbcheckup/internal/hbstatus"
)

// FromSnapshot wraps a successful local scan.
func FromSnapshot(hostname string, snap activitylog.Snapshot) PeerStatus {
	return PeerStatus{
		Success:  true,
		Hostname: hostname,
		Snapshot: snap,
	}
}

// Failed reports a host whose log could not be scanned.
func Failed(hostname string) PeerStatus {
	return PeerStatus{Hostname: hostname}
}

// Unavailable is the placeholder row for a peer that could not be reached or
// answered with something other than a checkup document.
func Unavailable(peerURL string) PeerStatus {
	return PeerStatus{
		Hostname: peerURL,
		Snapshot: activitylog.Snapshot{
			Status:     hbstatus.PeerUnavailable,
			StatusText: hbstatus.PeerUnavailable.Label(),
		},
	}
}

// ShortHostname strips the mDNS ".local" suffix macOS appends to host names.
func ShortHostname(name string) string {
	return strings.Replace(name, ".local", "", 1)
}
