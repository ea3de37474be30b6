package hbstatus

// Status is the machine-readable key for a HandBrake activity phase.
type Status string

const (
	QueueComplete   Status = "QUEUE_COMPLETE"
	ScanComplete    Status = "SCAN_COMPLETE"
	Scanning        Status = "SCANNING"
	Ripping         Status = "RIPPING"
	RippingEncoding Status = "RIPPING_ENCODING"
	RippingSubScan  Status = "RIPPING_SUB_SCAN"
	PeerUnavailable Status = "PEER_UNAVAILABLE"
)

var allStatuses = []Status{
	QueueComplete,
	ScanComplete,
	Scanning,
	Ripping,
	RippingEncoding,
	RippingSubScan,
	PeerUnavailable,
}

var labels = map[Status]string{
	QueueComplete:   "Queue Complete - Idle",
	ScanComplete:    "Scan Complete - Idle",
	Scanning:        "📀 Scanning",
	Ripping:         "🍹 Ripping",
	RippingEncoding: "🍹 Ripping - Encoding",
	RippingSubScan:  "🍹 Ripping - Subtitle Scan",
	PeerUnavailable: "🚨 Peer Unavailable 🚨",
}

var reverseLabels = func() map[string]Status {
	lookup := make(map[string]Status, len(labels))
	for status, label := range labels {
		lookup[label] = status
	}
	return lookup
}()

// All returns every known status in display order.
func All() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// Label returns the human-readable text shown on the dashboard.
func (s Status) Label() string {
	return labels[s]
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := labels[s]
	return ok
}

// Active reports whether the status represents a rip in flight.
func (s Status) Active() bool {
	switch s {
	case Ripping, RippingEncoding, RippingSubScan:
		return true
	default:
		return false
	}
}

// FromLabel resolves a display label back to its status key.
func FromLabel(label string) (Status, bool) {
	status, ok := reverseLabels[label]
	return status, ok
}

// Parse resolves a machine key such as "RIPPING_ENCODING".
func Parse(key string) (Status, bool) {
	status := Status(key)
	if !status.Valid() {
		return "", false
	}
	return status, true
}
