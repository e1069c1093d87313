package layout

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tsawler/glyphtext/font"
)

// nopHandler discards all log records
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h nopHandler) WithGroup(string) slog.Handler { return h }

func loggerOrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(nopHandler{})
	}
	return l
}

// diagnostics collects the warnings of one reconstruction. A nil
// *diagnostics drops everything.
type diagnostics struct {
	logger   *slog.Logger
	seen     map[string]bool
	warnings []Warning
}

func newDiagnostics(logger *slog.Logger) *diagnostics {
	return &diagnostics{
		logger: loggerOrNop(logger),
		seen:   make(map[string]bool),
	}
}

// metricsMissing records a missing width once per family and character
func (d *diagnostics) metricsMissing(err error) {
	if d == nil {
		return
	}
	var mErr *font.FontMetricsMissingError
	if !errors.As(err, &mErr) {
		d.add(Warning{Kind: WarningMetrics, Message: err.Error(), Err: err})
		return
	}
	key := mErr.Family + "\x00" + mErr.Text
	if d.seen[key] {
		return
	}
	d.seen[key] = true

	d.logger.Warn("using default glyph width", "font", mErr.Family, "char", mErr.Text)
	d.add(Warning{Kind: WarningMetrics, Message: mErr.Error(), Err: mErr})
}

// unresolved records a script group that was left unresolved
func (d *diagnostics) unresolved(err *AmbiguousScriptGroupError) {
	if d == nil {
		return
	}
	d.logger.Warn("unresolved script group", "lines", err.Lines, "reason", err.Reason)
	d.add(Warning{Kind: WarningUnresolved, Message: err.Error(), Err: err})
}

// orientation records a chunk that could not be normalized
func (d *diagnostics) orientation(msg string) {
	if d == nil {
		return
	}
	d.logger.Warn(msg)
	d.add(Warning{Kind: WarningOrientation, Message: msg})
}

func (d *diagnostics) debug(msg string, args ...any) {
	if d == nil {
		return
	}
	d.logger.Debug(msg, args...)
}

func (d *diagnostics) add(w Warning) {
	d.warnings = append(d.warnings, w)
}
