package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one line per record:
//
//	2024-03-09T17:30:00Z INFO pipeline/extract #7: row skipped bg.mp4 (missing_keywords) run=1a2b3c4d
//
// The component and stage form the subject, the sheet row follows it, and the
// filename or path and skip reason trail the message. Remaining attributes are
// appended as key=value in the order they were added.
type consoleHandler struct {
	mu         *sync.Mutex
	w          io.Writer
	level      slog.Level
	withSource bool
	prefix     string
	attrs      []slog.Attr
}

func newConsoleHandler(w io.Writer, level slog.Level, withSource bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level, withSource: withSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), h.qualify(attrs)...)
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func (h *consoleHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.prefix == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.prefix + a.Key, Value: a.Value}
	}
	return out
}

// line collects the pipeline fields that have a fixed position.
type line struct {
	component, stage string
	row              string
	target           string
	reason           string
	runID            string
	extra            []slog.Attr
}

func (l *line) take(a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	switch a.Key {
	case FieldComponent:
		l.component = a.Value.String()
	case FieldStage:
		l.stage = a.Value.String()
	case FieldRow:
		l.row = a.Value.String()
	case FieldFilename:
		l.target = a.Value.String()
	case FieldPath:
		if l.target == "" {
			l.target = a.Value.String()
		} else {
			l.extra = append(l.extra, a)
		}
	case FieldSkipReason:
		l.reason = a.Value.String()
	case FieldRunID:
		l.runID = a.Value.String()
	default:
		l.extra = append(l.extra, a)
	}
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var l line
	for _, a := range h.attrs {
		l.take(a)
	}
	record.Attrs(func(a slog.Attr) bool {
		l.take(slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
		return true
	})

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(ts.UTC().Format(time.RFC3339))
	b.WriteByte(' ')
	b.WriteString(levelLabel(record.Level))

	subject := l.component
	if l.stage != "" {
		if subject != "" {
			subject += "/"
		}
		subject += l.stage
	}
	if subject != "" {
		b.WriteByte(' ')
		b.WriteString(subject)
	}
	if l.row != "" {
		b.WriteString(" #")
		b.WriteString(l.row)
	}
	if subject != "" || l.row != "" {
		b.WriteByte(':')
	}

	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	b.WriteByte(' ')
	b.WriteString(msg)

	if l.target != "" {
		b.WriteByte(' ')
		b.WriteString(quoteIfNeeded(l.target))
	}
	if l.reason != "" {
		b.WriteString(" (")
		b.WriteString(l.reason)
		b.WriteByte(')')
	}
	if h.withSource && record.PC != 0 {
		if src := record.Source(); src != nil {
			fmt.Fprintf(&b, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	for _, a := range l.extra {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(consoleValue(a.Value))
	}
	if l.runID != "" {
		b.WriteString(" run=")
		b.WriteString(shortRunID(l.runID))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// shortRunID keeps the first uuid segment; the full id is in the ledger and
// the JSON log.
func shortRunID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func consoleValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			parts = append(parts, a.Key+"="+consoleValue(a.Value.Resolve()))
		}
		return "{" + strings.Join(parts, " ") + "}"
	default:
		return quoteIfNeeded(v.String())
	}
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\r\n=\"") {
		return strconv.Quote(s)
	}
	return s
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
