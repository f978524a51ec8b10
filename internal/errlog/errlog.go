// Package errlog appends request-scoped failures to a plain log file so
// they survive restarts, mirroring each entry to slog. The logger itself
// never returns an error: a failure log that can fail defeats its point.
package errlog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

type Logger struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Logger {
	return &Logger{path: path}
}

// Log appends a timestamped entry for msg and err to the log file and
// mirrors it to slog. File errors are swallowed.
func (l *Logger) Log(ctx context.Context, msg string, err error) {
	slog.ErrorContext(ctx, msg, "error", err)

	line := fmt.Sprintf("%s - %s: %v\n", time.Now().Format("2006-01-02 15:04:05"), msg, err)

	l.mu.Lock()
	defer l.mu.Unlock()
	f, openErr := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if openErr != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(line)
}
