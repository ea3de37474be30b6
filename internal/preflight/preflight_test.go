package preflight

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hbcheckup/internal/api"
	"hbcheckup/internal/config"
)

func TestCheckActivityLog_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "HandBrake-activitylog.txt")
	if err := os.WriteFile(path, []byte("[00:40:31] ScanCore scan done\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckActivityLog(path)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckActivityLog_Missing(t *testing.T) {
	result := CheckActivityLog(filepath.Join(t.TempDir(), "nope.txt"))
	if result.Passed {
		t.Fatal("expected failure for missing log")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckActivityLog_Directory(t *testing.T) {
	if result := CheckActivityLog(t.TempDir()); result.Passed {
		t.Fatal("expected failure for directory")
	}
}

func TestCheckStateDir(t *testing.T) {
	dir := t.TempDir()
	if result := CheckStateDir(dir); !result.Passed {
		t.Fatalf("expected existing dir to pass: %s", result.Detail)
	}
	if result := CheckStateDir(filepath.Join(dir, "a", "b")); !result.Passed {
		t.Fatalf("expected creatable dir to pass: %s", result.Detail)
	}

	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckStateDir(file); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckPort(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	busy := l.Addr().String()
	if result := CheckPort(busy); result.Passed {
		t.Fatal("expected busy port to fail")
	}
	l.Close()
	if result := CheckPort(busy); !result.Passed {
		t.Fatalf("expected released port to pass: %s", result.Detail)
	}
}

func TestCheckPeer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(api.Failed("den-mac"))
	}))
	defer srv.Close()

	result := CheckPeer(context.Background(), srv.URL, "good")
	if result.Passed || !strings.Contains(result.Detail, "cannot read") {
		t.Fatalf("expected unreadable-log failure, got %+v", result)
	}
	result = CheckPeer(context.Background(), srv.URL, "bad")
	if result.Passed || !strings.Contains(result.Detail, "unreachable") {
		t.Fatalf("expected auth failure, got %+v", result)
	}
}

func TestRunAllOrder(t *testing.T) {
	cfg := config.Default()
	cfg.HandbrakePath = filepath.Join(t.TempDir(), "missing.txt")
	cfg.StateDir = t.TempDir()
	cfg.Bind = "127.0.0.1"
	cfg.Peers = []string{"http://127.0.0.1:1/checkup"}

	results := RunAll(context.Background(), &cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if results[0].Name != "Activity log" || results[3].Name != "Peer http://127.0.0.1:1/checkup" {
		t.Fatalf("unexpected order %+v", results)
	}
	if Passed(results) {
		t.Fatal("expected overall failure")
	}
}
