package gateway

import (
	"fmt"
	"os"
	"path/filepath"

	"recon-insights/internal/domain"
	"recon-insights/internal/export"
)

// CSVReportWriter stores exported reports as CSV files in one directory.
type CSVReportWriter struct {
	dir string
}

// NewCSVReportWriter creates a writer storing reports in dir.
func NewCSVReportWriter(dir string) *CSVReportWriter {
	return &CSVReportWriter{dir: dir}
}

// WriteReport writes rows to the file named after ctx and returns its path.
// The rows go to a temporary file that replaces an existing report only once
// fully written. Every failure is an *export.ExportError.
func (w *CSVReportWriter) WriteReport(ctx domain.ExportContext, rows []domain.CsvRow) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", &export.ExportError{Op: "create", Err: fmt.Errorf("failed to create output directory %s: %w", w.dir, err)}
	}

	path := filepath.Join(w.dir, export.FileName(ctx))
	file, err := os.CreateTemp(w.dir, ".report-*.csv")
	if err != nil {
		return "", &export.ExportError{Op: "create", Err: fmt.Errorf("failed to create report file in %s: %w", w.dir, err)}
	}
	tmp := file.Name()

	if err := export.Write(file, rows); err != nil {
		file.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return "", &export.ExportError{Op: "close", Err: fmt.Errorf("failed to close report file %s: %w", tmp, err)}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", &export.ExportError{Op: "rename", Err: fmt.Errorf("failed to move report to %s: %w", path, err)}
	}
	return path, nil
}
