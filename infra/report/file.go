package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilianp07/vrptw/core/itinerary"
	corereport "github.com/kilianp07/vrptw/core/report"
	"github.com/kilianp07/vrptw/infra/logger"
	"github.com/kilianp07/vrptw/pkg/export"
)

// FileConfig configures FileSink. Path may contain {run_id}, which is
// replaced by the plan's run id.
type FileConfig struct {
	Path   string `json:"path"`
	Format string `json:"format"`
}

// FileSink writes each plan to a file.
type FileSink struct {
	cfg FileConfig
	log logger.Logger
}

var _ corereport.Sink = (*FileSink)(nil)

// NewFileSink validates cfg. The format defaults to the path extension.
func NewFileSink(cfg FileConfig) (*FileSink, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file sink: path is required")
	}
	if cfg.Format == "" {
		cfg.Format = strings.TrimPrefix(filepath.Ext(cfg.Path), ".")
	}
	switch cfg.Format {
	case export.FormatJSON, export.FormatCSV, export.FormatText:
	default:
		return nil, fmt.Errorf("file sink: unsupported format %q", cfg.Format)
	}
	return &FileSink{cfg: cfg, log: logger.New("file-report")}, nil
}

// Report implements corereport.Sink. The file is written to a temporary
// name first and renamed once complete.
func (s *FileSink) Report(_ context.Context, plan itinerary.Plan) error {
	path := strings.ReplaceAll(s.cfg.Path, "{run_id}", plan.RunID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("file sink: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".plan-*")
	if err != nil {
		return fmt.Errorf("file sink: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if err := export.Write(tmp, s.cfg.Format, plan); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file sink: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file sink: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("file sink: %w", err)
	}
	s.log.Infof("plan %s written to %s", plan.RunID, path)
	return nil
}
