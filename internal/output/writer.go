// Package output persists flattened records as BOM-prefixed UTF-8 CSV files.
package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"footstats-collector/internal/flatten"
	"footstats-collector/internal/logging"
)

// Writer serializes record batches under a root directory and keeps the manifest current.
type Writer struct {
	layout Layout
	logger *slog.Logger
	now    func() time.Time
}

// NewWriter constructs a writer rooted at root. logger may be nil.
func NewWriter(root string, logger *slog.Logger) *Writer {
	return &Writer{
		layout: Layout{Root: root},
		logger: logger,
		now:    time.Now,
	}
}

// Layout exposes the path layout used by the writer.
func (w *Writer) Layout() Layout {
	if w == nil {
		return Layout{}
	}
	return w.layout
}

// Write replaces path with records. An empty batch creates nothing.
func (w *Writer) Write(records []flatten.Record, path string) error {
	if w == nil {
		return errors.New("output writer not configured")
	}
	if path == "" {
		return errors.New("output path required")
	}
	if len(records) == 0 {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := writeCSV(tmp, records); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	// The CSV is already in place; a stale manifest does not fail the write.
	if err := w.updateManifest(path, len(records)); err != nil {
		logging.Warn(w.logger, "manifest update failed",
			slog.String(logging.FieldPath, path),
			"error", err,
		)
	}
	return nil
}

func writeCSV(path string, records []flatten.Record) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bom := transform.NewWriter(f, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(bom)

	header := flatten.Header(records)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, rec := range records {
		for i, col := range header {
			v, _ := rec.Get(col)
			row[i] = v
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return bom.Close()
}
