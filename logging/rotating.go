package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const logFilePrefix = "vat-rates-"

// RotatingLogger is an io.Writer that starts a new file every ISO week,
// or sooner when the current file reaches maxFileSize. Files older than the
// retention period are removed whenever a new file is opened.
type RotatingLogger struct {
	mu          sync.Mutex
	logDir      string
	retention   time.Duration
	maxFileSize int64

	file     *os.File
	week     string
	sequence int
	size     int64

	now func() time.Time
}

// NewRotatingLogger creates a rotating logger in logDir.
// The directory is created when missing.
func NewRotatingLogger(logDir string, retentionWeeks int, maxFileSize int64) (*RotatingLogger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	return &RotatingLogger{
		logDir:      logDir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
		now:         time.Now,
	}, nil
}

// weekKey returns the ISO week in YYYY-Www format
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (rl *RotatingLogger) fileName(week string, sequence int) string {
	if sequence == 0 {
		return logFilePrefix + week + ".log"
	}
	return fmt.Sprintf("%s%s_%02d.log", logFilePrefix, week, sequence)
}

// Write writes p to the current file, rotating first when needed
func (rl *RotatingLogger) Write(p []byte) (int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	week := weekKey(rl.now())
	switch {
	case rl.file == nil || rl.week != week:
		if err := rl.open(week, 0); err != nil {
			return 0, err
		}
	case rl.maxFileSize > 0 && rl.size+int64(len(p)) > rl.maxFileSize:
		if err := rl.open(week, rl.sequence+1); err != nil {
			return 0, err
		}
	}

	n, err := rl.file.Write(p)
	rl.size += int64(n)
	return n, err
}

// open switches to the file for week/sequence, skipping files that are already full
func (rl *RotatingLogger) open(week string, sequence int) error {
	if rl.file != nil {
		rl.file.Close()
		rl.file = nil
	}

	for {
		path := filepath.Join(rl.logDir, rl.fileName(week, sequence))
		info, err := os.Stat(path)
		if err == nil && rl.maxFileSize > 0 && info.Size() >= rl.maxFileSize {
			sequence++
			continue
		}

		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}

		rl.file = file
		rl.week = week
		rl.sequence = sequence
		rl.size = 0
		if info != nil {
			rl.size = info.Size()
		}
		break
	}

	rl.cleanupOldLogs()
	return nil
}

// cleanupOldLogs removes log files not modified within the retention period
func (rl *RotatingLogger) cleanupOldLogs() int {
	if rl.retention <= 0 {
		return 0
	}

	entries, err := os.ReadDir(rl.logDir)
	if err != nil {
		return 0
	}

	cutoff := rl.now().Add(-rl.retention)
	deleted := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		if rl.file != nil && filepath.Base(rl.file.Name()) == name {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if os.Remove(filepath.Join(rl.logDir, name)) == nil {
				deleted++
			}
		}
	}

	return deleted
}

// Close closes the current file
func (rl *RotatingLogger) Close() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.file == nil {
		return nil
	}
	err := rl.file.Close()
	rl.file = nil
	return err
}
