package cli

import (
	"fmt"
	"io"
	"log/slog"
)

// StatusReporter renders retrieval progress for the terminal and mirrors it
// to the structured log. Satisfies usecase.StatusReporter.
type StatusReporter struct {
	out    io.Writer
	logger *slog.Logger
}

// NewStatusReporter builds the terminal-facing progress reporter handed to
// the retriever.
func NewStatusReporter(out io.Writer, logger *slog.Logger) *StatusReporter {
	return &StatusReporter{out: out, logger: logger}
}

func (r *StatusReporter) Statusf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(r.out, "   "+statusStyle.Render(msg))
	if r.logger != nil {
		r.logger.Debug("retrieval progress", "msg", msg)
	}
}
