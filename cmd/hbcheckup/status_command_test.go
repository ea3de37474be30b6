package main

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"hbcheckup/internal/api"
	"hbcheckup/internal/hbstatus"
)

func TestStatusJSONFromLogFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{
		"status", "--json", "--now", "01:30:30",
		"--log", fixture(t, "how_to_be_single_partial_encoding.log"),
	}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}

	var status api.PeerStatus
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !status.Success || status.Status != hbstatus.RippingEncoding {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.CurrentEncode != "How to be Single" || status.StartTime != "00:43:52" || status.ETA != "00:03:53" {
		t.Fatalf("unexpected snapshot %+v", status.Snapshot)
	}
}

func TestStatusReadsStdin(t *testing.T) {
	env := setupCLITestEnv(t)
	data, err := os.ReadFile(fixture(t, "snatched_complete.log"))
	if err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLIWithInput(t, []string{"status", "-"}, env.configPath, strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("status -: %v", err)
	}
	requireContains(t, out, hbstatus.QueueComplete.Label())
	requireContains(t, out, "Snatched")
	requireContains(t, out, "00:34:57")
	requireContains(t, out, "00:00:00")
}

func TestStatusFrameEstimatorFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{
		"status", "--json", "--now", "01:07:00", "--estimator", "frame",
		"--log", fixture(t, "nextgen_frames.log"),
	}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var status api.PeerStatus
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.ETA != "00:08:00" {
		t.Fatalf("unexpected frame eta %q", status.ETA)
	}
}

func TestStatusUsesConfiguredLog(t *testing.T) {
	env := setupCLITestEnv(t)
	data, err := os.ReadFile(fixture(t, "witches_partial_scan.log"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env.cfg.HandbrakePath, data, 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "[WARN] "+hbstatus.Scanning.Label())
}

func TestStatusMissingLogFails(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"status"}, env.configPath); err == nil {
		t.Fatal("expected error for missing activity log")
	}
}

func TestStatusRejectsBadFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"status", "--now", "25:00:00"}, env.configPath); err == nil {
		t.Fatal("expected --now validation error")
	}
	if _, _, err := runCLI(t, []string{"status", "--estimator", "psychic"}, env.configPath); err == nil {
		t.Fatal("expected estimator error")
	}
	if _, _, err := runCLI(t, []string{"status", "extra"}, env.configPath); err == nil {
		t.Fatal("expected argument error")
	}
}
