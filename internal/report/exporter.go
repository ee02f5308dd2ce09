package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

const (
	// SheetName is the single sheet every daily artifact carries.
	SheetName = "Attendance"

	filenamePrefix = "attendance_"
	filenameExt    = ".xlsx"
	dateLayout     = "2006-01-02"
)

var headerRow = []interface{}{
	"employee_id", "name", "date", "time_in", "time_out", "status", "duration",
}

// SessionLister provides the sessions of a single day, ordered by
// (employee_id, time_in).
type SessionLister interface {
	ListByDate(ctx context.Context, date time.Time) ([]domain.Session, error)
}

// ArtifactInfo describes one report file on disk.
type ArtifactInfo struct {
	Filename   string    `json:"filename"`
	SizeBytes  int64     `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Exporter recomputes the daily xlsx artifact from the ledger and serves
// reads back from the artifact itself. The artifact is derived state; the
// ledger stays the source of truth.
type Exporter struct {
	sessions SessionLister
	dir      string
	logger   *slog.Logger
}

func NewExporter(sessions SessionLister, dir string, logger *slog.Logger) *Exporter {
	return &Exporter{
		sessions: sessions,
		dir:      dir,
		logger:   logger,
	}
}

// Filename returns the artifact name for a calendar date.
func Filename(date time.Time) string {
	return filenamePrefix + date.Format(dateLayout) + filenameExt
}

// ValidateFilename rejects names that could escape the reports directory
// or that do not look like a report artifact.
func ValidateFilename(name string) error {
	if name == "" ||
		strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) ||
		!strings.HasPrefix(name, filenamePrefix) ||
		!strings.HasSuffix(name, filenameExt) {
		return domain.ErrInvalidFilename.WithError(fmt.Errorf("filename %q", name))
	}
	return nil
}

// ArtifactPath resolves a validated filename inside the reports directory.
func (e *Exporter) ArtifactPath(name string) (string, error) {
	if err := ValidateFilename(name); err != nil {
		return "", err
	}

	path := filepath.Join(e.dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrReportNotFound.WithError(err)
		}
		return "", fmt.Errorf("stat artifact: %w", err)
	}
	return path, nil
}

// Export rebuilds the whole artifact for one date from the ledger and
// replaces the previous file. Rebuilding from scratch keeps the artifact
// consistent after any mutation, including punch-outs that amend rows
// written earlier in the day.
func (e *Exporter) Export(ctx context.Context, date time.Time) error {
	sessions, err := e.sessions.ListByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "G1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "G", 16); err != nil {
		return fmt.Errorf("set column widths: %w", err)
	}

	for i, session := range sessions {
		row := rowFromSession(session)
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			row.EmployeeID, row.Name, row.Date,
			row.TimeIn, row.TimeOut, row.Status, row.Duration,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	path := filepath.Join(e.dir, Filename(date))
	tmp := path + ".tmp"
	// SaveAs rejects the ".tmp" extension, so write the workbook to the
	// temp file directly.
	w, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	if err := f.Write(w); err != nil {
		_ = w.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("save artifact: %w", err)
	}
	if err := w.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("save artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace artifact: %w", err)
	}

	e.logger.Info("report exported",
		slog.String("file", Filename(date)),
		slog.Int("rows", len(sessions)),
	)

	return nil
}

// Read re-parses the artifact for a date. A missing artifact means no
// attendance was recorded yet, which reads as an empty report.
func (e *Exporter) Read(date time.Time) ([]domain.ReportRow, error) {
	path := filepath.Join(e.dir, Filename(date))

	f, err := excelize.OpenFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.ReportRow{}, nil
		}
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = f.Close() }()

	cells, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("read artifact rows: %w", err)
	}

	rows := make([]domain.ReportRow, 0, len(cells))
	for i, cell := range cells {
		if i == 0 {
			continue // header
		}
		rows = append(rows, domain.ReportRow{
			EmployeeID: column(cell, 0),
			Name:       column(cell, 1),
			Date:       column(cell, 2),
			TimeIn:     column(cell, 3),
			TimeOut:    column(cell, 4),
			Status:     column(cell, 5),
			Duration:   column(cell, 6),
		})
	}

	return rows, nil
}

// List returns the artifacts on disk, newest modification first.
func (e *Exporter) List() ([]ArtifactInfo, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ArtifactInfo{}, nil
		}
		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	artifacts := make([]ArtifactInfo, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || ValidateFilename(name) != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, ArtifactInfo{
			Filename:   name,
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].ModifiedAt.After(artifacts[j].ModifiedAt)
	})

	return artifacts, nil
}

func rowFromSession(session domain.Session) domain.ReportRow {
	row := domain.ReportRow{
		EmployeeID: session.EmployeeID,
		Name:       session.Name,
		Date:       session.Date.Format(dateLayout),
		TimeIn:     session.TimeIn.Format(domain.ClockFormat),
		Status:     session.Status,
	}
	if session.TimeOut != nil {
		row.TimeOut = session.TimeOut.Format(domain.ClockFormat)
		row.Duration = domain.FormatDuration(session.TimeOut.Sub(session.TimeIn))
	}
	return row
}

func column(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
