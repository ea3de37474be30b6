package api

import (
	"hbcheckup/internal/activitylog"
)

// ProgressSnapshot is the job and progress portion of a checkup document.
type ProgressSnapshot = activitylog.Snapshot

// PeerStatus is one host's row on the dashboard. The embedded snapshot keeps
// its own JSON field names, so a PeerStatus decodes from the same document a
// /checkup endpoint serves.
type PeerStatus struct {
	Success  bool   `json:"success"`
	Hostname string `json:"hostname"`
	activitylog.Snapshot
}

// CheckupResponse is the /checkup payload.
type CheckupResponse = PeerStatus

// CheckupAllResponse is the /checkup-all payload: this host first, then every
// configured peer in configuration order.
type CheckupAllResponse struct {
	Success  bool         `json:"success"`
	HostData []PeerStatus `json:"hostData"`
}

// ErrorResponse is written for rejected requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
