package main

import (
	"strings"
	"testing"

	"hbcheckup/internal/testsupport"
)

func TestLogPrintsLastLines(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithLog(
		"[00:43:52] QueueCore started encoding Snatched.m4v",
		"[00:43:53] reader: first SCR 0",
		"[00:50:00] Starting Task: Encoding Pass",
	))
	out, _, err := runCLI(t, []string{"log", "-n", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "Encoding Pass") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestLogMarkersOnly(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithLog(
		"[00:43:52] QueueCore started encoding Snatched.m4v",
		"[00:43:53] reader: first SCR 0",
		`[00:51:00] sync: "Chapter 1" (1) at frame 1 time 0`,
		"[00:51:01] muxmp4: track 1",
	))
	out, _, err := runCLI(t, []string{"log", "--markers"}, env.configPath)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if strings.Contains(out, "reader:") || strings.Contains(out, "muxmp4") {
		t.Fatalf("noise lines not filtered:\n%s", out)
	}
	requireContains(t, out, "started encoding")
	requireContains(t, out, "Chapter 1")
}
