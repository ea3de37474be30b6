package activitylog_test

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/iotest"
	"time"

	"hbcheckup/internal/activitylog"
	"hbcheckup/internal/hbstatus"
)

func scanFixture(t *testing.T, name string, now time.Time, est activitylog.Estimator) activitylog.Snapshot {
	t.Helper()
	reader := activitylog.NewReader(
		filepath.Join("testdata", name),
		activitylog.WithClock(func() time.Time { return now }),
		activitylog.WithEstimator(est),
	)
	snap, err := reader.Scan()
	if err != nil {
		t.Fatalf("scan %s: %v", name, err)
	}
	return snap
}

func assertSnapshot(t *testing.T, got, want activitylog.Snapshot) {
	t.Helper()
	if got != want {
		t.Fatalf("unexpected snapshot:\n got  %+v\n want %+v", got, want)
	}
}

// The partial encoding log is reconstructed: two of four chapters remain and
// the checkpoints are 300s apart, so 2*300s minus the 367s since the last
// checkpoint leaves 233s.
func TestScanPartialEncoding(t *testing.T) {
	got := scanFixture(t, "how_to_be_single_partial_encoding.log", clockAt(1, 30, 30), nil)
	assertSnapshot(t, got, activitylog.Snapshot{
		CurrentEncode: "How to be Single",
		StartTime:     "00:43:52",
		EndTime:       "",
		StatusText:    hbstatus.RippingEncoding.Label(),
		Status:        hbstatus.RippingEncoding,
		ETA:           "00:03:53",
	})
}

func TestScanCompletedRip(t *testing.T) {
	got := scanFixture(t, "snatched_complete.log", clockAt(3, 10, 10), nil)
	assertSnapshot(t, got, activitylog.Snapshot{
		CurrentEncode: "Snatched",
		StartTime:     "23:55:58",
		EndTime:       "00:34:57",
		StatusText:    hbstatus.QueueComplete.Label(),
		Status:        hbstatus.QueueComplete,
		ETA:           "00:00:00",
	})
}

func TestScanSubtitleScan(t *testing.T) {
	got := scanFixture(t, "how_to_be_single_partial_scanning.log", clockAt(0, 44, 0), nil)
	assertSnapshot(t, got, activitylog.Snapshot{
		CurrentEncode: "How to be Single",
		StartTime:     "00:43:52",
		StatusText:    hbstatus.RippingSubScan.Label(),
		Status:        hbstatus.RippingSubScan,
		ETA:           "~",
	})
}

func TestScanInitialScan(t *testing.T) {
	got := scanFixture(t, "witches_partial_scan.log", clockAt(0, 44, 0), nil)
	assertSnapshot(t, got, activitylog.Snapshot{
		StatusText: hbstatus.Scanning.Label(),
		Status:     hbstatus.Scanning,
	})
}

func TestScanAfterInitialScan(t *testing.T) {
	got := scanFixture(t, "witches_full_scan.log", clockAt(0, 44, 0), nil)
	assertSnapshot(t, got, activitylog.Snapshot{
		StatusText: hbstatus.ScanComplete.Label(),
		Status:     hbstatus.ScanComplete,
	})
}

func TestScanEstimatorsDiverge(t *testing.T) {
	now := clockAt(1, 7, 0)
	frames := scanFixture(t, "nextgen_frames.log", now, activitylog.FrameEstimator{})
	if frames.ETA != "00:08:00" {
		t.Fatalf("unexpected frame eta %q", frames.ETA)
	}
	chapters := scanFixture(t, "nextgen_frames.log", now, activitylog.ChapterEstimator{})
	if chapters.ETA != "00:18:00" {
		t.Fatalf("unexpected chapter eta %q", chapters.ETA)
	}
	if frames.CurrentEncode != "NEXTGEN_S07_E04" || frames.Status != hbstatus.RippingEncoding {
		t.Fatalf("unexpected snapshot %+v", frames)
	}
}

func TestScanMissingFile(t *testing.T) {
	reader := activitylog.NewReader(filepath.Join(t.TempDir(), "missing.log"))
	_, err := reader.Scan()
	if err == nil {
		t.Fatal("expected error for missing log")
	}
	if !errors.Is(err, activitylog.ErrLogUnreadable) {
		t.Fatalf("expected ErrLogUnreadable, got %v", err)
	}
}

func TestScanReaderEmptyStream(t *testing.T) {
	snap, err := activitylog.ScanReader(strings.NewReader(""), clockAt(1, 0, 0), nil)
	if err != nil {
		t.Fatalf("ScanReader: %v", err)
	}
	if snap.Status != hbstatus.QueueComplete || snap.ETA != activitylog.ETADone {
		t.Fatalf("unexpected empty-log snapshot %+v", snap)
	}
}

func TestScanReaderTruncatesOversizedLines(t *testing.T) {
	log := strings.Join([]string{
		"[23:55:58] QueueCore started encoding Snatched.m4v",
		"[00:10:00] x264 [info]: " + strings.Repeat("x", 2*1024*1024),
		"[00:34:57] QueueCore work done",
	}, "\n")
	snap, err := activitylog.ScanReader(strings.NewReader(log), clockAt(1, 0, 0), nil)
	if err != nil {
		t.Fatalf("ScanReader: %v", err)
	}
	if snap.CurrentEncode != "Snatched" || snap.Status != hbstatus.QueueComplete || snap.EndTime != "00:34:57" {
		t.Fatalf("expected lines after an oversized line to be interpreted, got %+v", snap)
	}
}

func TestScanReaderReadFailure(t *testing.T) {
	_, err := activitylog.ScanReader(iotest.ErrReader(errors.New("disk gone")), clockAt(1, 0, 0), nil)
	if !errors.Is(err, activitylog.ErrLogUnreadable) {
		t.Fatalf("expected ErrLogUnreadable, got %v", err)
	}
}

func TestConcurrentScansAreIndependent(t *testing.T) {
	reader := activitylog.NewReader(
		filepath.Join("testdata", "how_to_be_single_partial_encoding.log"),
		activitylog.WithClock(func() time.Time { return clockAt(1, 30, 30) }),
	)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := reader.Scan()
			if err != nil {
				errs <- err
				return
			}
			if snap.ETA != "00:03:53" {
				errs <- errors.New("unexpected eta " + snap.ETA)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
