// Package runlog persists the per-run audit trail as JSON files on disk.
// Each run produces one manifest of the fetched orders plus one file per
// order under orders/ recording how the import of that order ended.
package runlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gematelier/ordersync/internal/domain/runs"
)

var (
	ErrLogDirUnavailable = errors.New("runlog: log directory unavailable")
	ErrWriteFailed       = errors.New("runlog: write failed")
)

const (
	ordersSubdir = "orders"
	fileMode     = 0o644
	dirMode      = 0o755
)

// manifest is the on-disk shape of the fetched-orders file
type manifest struct {
	RunID       string               `json:"run_id"`
	StartedAt   time.Time            `json:"started_at"`
	OrderCount  int                  `json:"order_count"`
	Orders      []runs.OrderSnapshot `json:"orders"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// FileWriter implements runs.RunLog backed by a directory tree
type FileWriter struct {
	dir string
}

// NewFileWriter creates the log directory layout and returns a writer. The
// directory and its orders/ subdirectory are created up front so a run that
// fetches zero orders still leaves a manifest behind.
func NewFileWriter(dir string) (*FileWriter, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrLogDirUnavailable)
	}
	if err := os.MkdirAll(filepath.Join(dir, ordersSubdir), dirMode); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogDirUnavailable, err)
	}
	return &FileWriter{dir: dir}, nil
}

// WriteManifest writes the run's fetched-order manifest to
// <dir>/<run-id>-fetched-orders.json
func (w *FileWriter) WriteManifest(run *runs.Run, orders []runs.OrderSnapshot) error {
	if orders == nil {
		orders = []runs.OrderSnapshot{}
	}
	doc := manifest{
		RunID:       run.ID.String(),
		StartedAt:   run.StartedAt,
		OrderCount:  len(orders),
		Orders:      orders,
		GeneratedAt: time.Now(),
	}
	name := fmt.Sprintf("%s-fetched-orders.json", run.ID)
	return w.writeJSON(filepath.Join(w.dir, name), doc)
}

// WriteOutcome writes one order's outcome file to
// <dir>/orders/<run-id>-<source-order-id>-<success|error>.json
func (w *FileWriter) WriteOutcome(outcome *runs.OrderOutcome) error {
	name := fmt.Sprintf("%s-%s-%s.json",
		outcome.RunID, outcome.SourceOrderID, outcome.Status.LogSuffix())
	return w.writeJSON(filepath.Join(w.dir, ordersSubdir, name), outcome)
}

func (w *FileWriter) writeJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), fileMode); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// Ensure FileWriter implements RunLog
var _ runs.RunLog = (*FileWriter)(nil)
