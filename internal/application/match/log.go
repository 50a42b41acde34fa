package match

import (
	"fmt"
	"strings"
)

// DefaultLogSize is how many lines a Log keeps
const DefaultLogSize = 200

// Log keeps the latest human-readable event lines of a campaign
type Log struct {
	lines []string
	max   int
}

// NewLog creates a log that keeps at most max lines
func NewLog(max int) *Log {
	if max <= 0 {
		max = DefaultLogSize
	}
	return &Log{max: max}
}

// Addf appends a formatted line, dropping the oldest when full
func (l *Log) Addf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
	if over := len(l.lines) - l.max; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

// Lines returns the kept lines, oldest first
func (l *Log) Lines() []string {
	return l.lines
}

// Tail returns up to n of the newest lines
func (l *Log) Tail(n int) []string {
	if n >= len(l.lines) {
		return l.lines
	}
	return l.lines[len(l.lines)-n:]
}

// String joins the lines for export
func (l *Log) String() string {
	return strings.Join(l.lines, "\n")
}
