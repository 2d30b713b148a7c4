// Package logging builds the structured loggers shared by every component.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu       sync.RWMutex
	output   io.Writer = os.Stderr
	level              = log.InfoLevel
	registry []*log.Logger
)

// New creates a [log.Logger] that writes to stderr with timestamps and caller reporting.
// The component name is used as the log prefix.
func New(component string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	l := log.NewWithOptions(output, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		Prefix:          component,
	})
	l.SetLevel(level)
	registry = append(registry, l)
	return l
}

// SetLevel parses a level name ("debug", "info", "warn", "error") and applies it to every
// logger created so far and to those created later. Unknown names leave the level unchanged.
func SetLevel(name string) error {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	level = lvl
	for _, l := range registry {
		l.SetLevel(lvl)
	}
	return nil
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
