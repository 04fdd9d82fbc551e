package report

import (
	"context"
	"io"
	"os"

	"github.com/kilianp07/vrptw/core/itinerary"
	corereport "github.com/kilianp07/vrptw/core/report"
	"github.com/kilianp07/vrptw/pkg/export"
)

// ConsoleSink prints plans in a human readable layout.
type ConsoleSink struct {
	w      io.Writer
	format string
}

var _ corereport.Sink = (*ConsoleSink)(nil)

// NewConsoleSink writes to w, or stdout when w is nil. An empty format
// selects the text layout.
func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = export.FormatText
	}
	return &ConsoleSink{w: w, format: format}
}

// Report implements corereport.Sink.
func (s *ConsoleSink) Report(_ context.Context, plan itinerary.Plan) error {
	return export.Write(s.w, s.format, plan)
}
