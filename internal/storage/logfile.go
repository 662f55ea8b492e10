package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// TimestampLayout is the local-time stamp heading each log record
const TimestampLayout = "2006-01-02 15:04:05"

// Separator terminates each log record
var Separator = strings.Repeat("-", 40)

// LogFile is the append-only, human-readable scan log. Appends from one
// LogFile are serialized; the file is opened in append mode so records from
// separate processes do not overwrite each other.
type LogFile struct {
	Path string

	mu sync.Mutex
}

// NewLogFile returns a LogFile writing to path
func NewLogFile(path string) *LogFile {
	return &LogFile{Path: path}
}

// Append writes one record: the bracketed timestamp, the body and the
// separator line. The file and its directory are created if absent.
func (l *LogFile) Append(at time.Time, body string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := EnsureParent(l.Path); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log %s: %w", l.Path, err)
	}

	record := fmt.Sprintf("[%s]\n%s\n%s\n", at.Format(TimestampLayout), body, Separator)
	if _, err := f.WriteString(record); err != nil {
		f.Close()
		return fmt.Errorf("writing log %s: %w", l.Path, err)
	}

	return f.Close()
}

// LogEntry is one record read back from the scan log
type LogEntry struct {
	Timestamp time.Time
	Body      string
}

// Field returns the value of the first "name: value" line in the body
func (e LogEntry) Field(name string) string {
	prefix := name + ": "
	for _, line := range strings.Split(e.Body, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}

// ReadLog parses every complete record in the log at path, oldest first
func ReadLog(path string) ([]LogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseLog(f)
}

// ParseLog parses log records from r. Text outside a record and any record
// without its separator are skipped.
func ParseLog(r io.Reader) ([]LogEntry, error) {
	var (
		entries []LogEntry
		current *LogEntry
		body    []string
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		// A stamp inside an open record means that record was cut short.
		if ts, ok := parseStamp(line); ok {
			current = &LogEntry{Timestamp: ts}
			body = body[:0]
			continue
		}

		if current == nil {
			continue
		}

		if line == Separator {
			current.Body = strings.Join(body, "\n")
			entries = append(entries, *current)
			current = nil
			continue
		}
		body = append(body, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}

	return entries, nil
}

func parseStamp(line string) (time.Time, bool) {
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(TimestampLayout, line[1:len(line)-1], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
