package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"hbcheckup/internal/logs"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "HandBrake-activitylog.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append log: %v", err)
	}
}

func TestLastLines(t *testing.T) {
	path := writeLog(t, "a\nb\nc\n")
	page, err := logs.Last(path, 2, nil)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if len(page.Lines) != 2 || page.Lines[0] != "b" || page.Lines[1] != "c" {
		t.Fatalf("unexpected lines: %#v", page.Lines)
	}
	if page.Offset != 6 {
		t.Fatalf("expected offset at end of file, got %d", page.Offset)
	}
}

func TestLastWithFilter(t *testing.T) {
	path := writeLog(t, "[00:43:52] QueueCore started encoding A.m4v\nnoise\n[00:50:00] Starting Task: Encoding Pass\nnoise\n")
	page, err := logs.Last(path, 10, func(line string) bool { return strings.HasPrefix(line, "[") })
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if len(page.Lines) != 2 {
		t.Fatalf("expected filtered lines, got %#v", page.Lines)
	}
}

func TestLastMissingFile(t *testing.T) {
	page, err := logs.Last(filepath.Join(t.TempDir(), "missing.txt"), 5, nil)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if len(page.Lines) != 0 || page.Offset != 0 {
		t.Fatalf("expected empty page, got %+v", page)
	}
}

func TestReadFromKeepsPartialLine(t *testing.T) {
	path := writeLog(t, "one\ntw")
	page, err := logs.ReadFrom(path, 0, nil)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if len(page.Lines) != 1 || page.Lines[0] != "one" || page.Offset != 4 {
		t.Fatalf("unexpected page %+v", page)
	}

	appendLog(t, path, "o\n")
	page, err = logs.ReadFrom(path, page.Offset, nil)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if len(page.Lines) != 1 || page.Lines[0] != "two" {
		t.Fatalf("unexpected continuation %+v", page)
	}
}

func TestReadFromRestartsAfterTruncate(t *testing.T) {
	path := writeLog(t, "old session line\n")
	if err := os.WriteFile(path, []byte("new\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	page, err := logs.ReadFrom(path, 17, nil)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if len(page.Lines) != 1 || page.Lines[0] != "new" {
		t.Fatalf("expected restart from top, got %+v", page)
	}
}

func TestFollowEmitsAppendedLines(t *testing.T) {
	path := writeLog(t, "start\n")
	page, err := logs.Last(path, 1, nil)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []string
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, page.Offset, 10*time.Millisecond, nil, func(line string) {
			mu.Lock()
			got = append(got, line)
			mu.Unlock()
		})
	}()

	appendLog(t, path, "later\n")
	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("follow never emitted the appended line")
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Follow: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "later" {
		t.Fatalf("unexpected follow lines %#v", got)
	}
}
