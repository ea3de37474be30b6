package api_test

import (
	"encoding/json"
	"testing"

	"hbcheckup/internal/activitylog"
	"hbcheckup/internal/api"
	"hbcheckup/internal/hbstatus"
)

func TestPeerStatusFlattensSnapshot(t *testing.T) {
	status := api.FromSnapshot("den-mac", activitylog.Snapshot{
		CurrentEncode: "How to be Single",
		StartTime:     "00:43:52",
		StatusText:    hbstatus.RippingEncoding.Label(),
		Status:        hbstatus.RippingEncoding,
		ETA:           "00:03:53",
	})
	data, err := json.Marshal(status)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal map: %v", err)
	}
	for _, key := range []string{"success", "hostname", "status", "statusText", "currentEncode", "startTime", "endTime", "eta"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("expected top-level key %q in %s", key, data)
		}
	}
	if fields["status"] != "RIPPING_ENCODING" {
		t.Fatalf("unexpected status key %v", fields["status"])
	}

	var decoded api.PeerStatus
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != status {
		t.Fatalf("round trip lost data: %+v vs %+v", decoded, status)
	}
}

func TestUnavailablePlaceholder(t *testing.T) {
	row := api.Unavailable("http://den.local:9595/checkup")
	if row.Success {
		t.Fatal("placeholder must not report success")
	}
	if row.Status != hbstatus.PeerUnavailable || row.StatusText != hbstatus.PeerUnavailable.Label() {
		t.Fatalf("unexpected placeholder %+v", row)
	}
	if row.Hostname != "http://den.local:9595/checkup" {
		t.Fatalf("unexpected hostname %q", row.Hostname)
	}
}

func TestShortHostname(t *testing.T) {
	if got := api.ShortHostname("den-mac.local"); got != "den-mac" {
		t.Fatalf("unexpected short hostname %q", got)
	}
	if got := api.ShortHostname("builder"); got != "builder" {
		t.Fatalf("unexpected short hostname %q", got)
	}
}
