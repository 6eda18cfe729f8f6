// Package logger holds the process-wide logger of regctl. It discards
// everything until Init enables file output.
package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the process logger. It is disabled at every level until Init
// enables a file.
var L = discard()

const (
	logPrefix = "regctl-"
	logSuffix = ".log"

	// DefaultRetention is how long daily log files are kept.
	DefaultRetention = 30 * 24 * time.Hour
)

// Options configures Init.
type Options struct {
	Enabled   bool
	LogDir    string        // default ~/.regctl/logs
	Level     slog.Level    // minimum level written
	Retention time.Duration // default DefaultRetention
}

// Init points L at today's JSON log file, or disables it when
// opts.Enabled is false. The returned function closes the file.
func Init(opts Options) (func() error, error) {
	if !opts.Enabled {
		L = discard()
		return func() error { return nil }, nil
	}

	dir, err := logDir(opts.LogDir)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	f, err := openDaily(dir, now)
	if err != nil {
		return nil, err
	}

	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	if n := pruneLogs(dir, now, opts.Retention); n > 0 {
		L.Debug("pruned old logs", "dir", dir, "removed", n)
	}
	return f.Close, nil
}

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func logDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".regctl", "logs"), nil
}

// openDaily opens (appending) the log file for now's date, creating dir.
func openDaily(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, logName(now)), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func logName(day time.Time) string {
	return logPrefix + day.Format(time.DateOnly) + logSuffix
}

// logDate extracts the day from a name produced by logName.
func logDate(name string) (time.Time, bool) {
	stamp, ok := strings.CutPrefix(name, logPrefix)
	if !ok {
		return time.Time{}, false
	}
	stamp, ok = strings.CutSuffix(stamp, logSuffix)
	if !ok {
		return time.Time{}, false
	}
	day, err := time.Parse(time.DateOnly, stamp)
	return day, err == nil
}

// pruneLogs removes daily files older than retention and reports how many
// went. Files it cannot date or remove are left alone.
func pruneLogs(dir string, now time.Time, retention time.Duration) int {
	if retention <= 0 {
		retention = DefaultRetention
	}
	matches, err := filepath.Glob(filepath.Join(dir, logPrefix+"*"+logSuffix))
	if err != nil {
		return 0
	}
	cutoff := now.Add(-retention)
	removed := 0
	for _, path := range matches {
		day, ok := logDate(filepath.Base(path))
		if !ok || !day.Before(cutoff) {
			continue
		}
		if os.Remove(path) == nil {
			removed++
		}
	}
	return removed
}
