package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

const defaultPollInterval = 250 * time.Millisecond

// Page is a slice of log lines plus the byte offset just past them.
type Page struct {
	Lines  []string
	Offset int64
}

// Filter selects which lines are returned. A nil Filter keeps every line.
type Filter func(line string) bool

func (f Filter) keep(line string) bool {
	return f == nil || f(line)
}

// Last returns the final limit lines that pass filter. A missing file yields an
// empty page so callers can start following before HandBrake writes anything.
func Last(path string, limit int, filter Filter) (Page, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, nil
		}
		return Page{}, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Page{}, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return Page{}, fmt.Errorf("log path %q is a directory", path)
	}
	if limit <= 0 {
		return Page{Offset: info.Size()}, nil
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	ring := make([]string, limit)
	count, idx := 0, 0
	for scanner.Scan() {
		line := scanner.Text()
		if !filter.keep(line) {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return Page{}, fmt.Errorf("read log file: %w", err)
	}

	offset, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return Page{}, fmt.Errorf("determine log offset: %w", err)
	}

	lines := make([]string, count)
	if count == limit {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return Page{Lines: lines, Offset: offset}, nil
}

// ReadFrom returns the complete lines written after offset. When the file has
// shrunk below offset it was truncated for a new session and reading restarts
// at the beginning. A trailing partial line is left for the next call.
func ReadFrom(path string, offset int64, filter Filter) (Page, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, nil
		}
		return Page{Offset: offset}, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Page{Offset: offset}, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return Page{Offset: offset}, fmt.Errorf("seek log file: %w", err)
	}

	reader := bufio.NewReaderSize(file, 64*1024)
	page := Page{Offset: offset}
	for {
		raw, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return page, nil
			}
			return page, fmt.Errorf("read log file: %w", err)
		}
		page.Offset += int64(len(raw))
		line := trimNewline(raw)
		if filter.keep(line) {
			page.Lines = append(page.Lines, line)
		}
	}
}

// Follow polls path from offset and calls emit for every new line until ctx
// is cancelled.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, filter Filter, emit func(string)) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		page, err := ReadFrom(path, offset, filter)
		if err != nil {
			return err
		}
		for _, line := range page.Lines {
			emit(line)
		}
		offset = page.Offset

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}
