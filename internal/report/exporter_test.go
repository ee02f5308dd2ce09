package report

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

type stubLister struct {
	sessions []domain.Session
	err      error
}

func (s *stubLister) ListByDate(_ context.Context, _ time.Time) ([]domain.Session, error) {
	return s.sessions, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func daySessions() []domain.Session {
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	nine := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	five := time.Date(2026, 8, 28, 17, 30, 15, 0, time.UTC)

	return []domain.Session{
		{
			EmployeeID: "E1",
			Name:       "Alice Martins",
			Date:       date,
			TimeIn:     nine,
			TimeOut:    &five,
			Status:     domain.StatusPresent,
		},
		{
			EmployeeID: "E2",
			Name:       "Bruno Costa",
			Date:       date,
			TimeIn:     nine.Add(15 * time.Minute),
			Status:     domain.StatusPresent,
		},
	}
}

func TestExporter_ExportAndRead(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	exporter := NewExporter(&stubLister{sessions: daySessions()}, dir, testLogger())

	require.NoError(t, exporter.Export(context.Background(), date))

	_, err := os.Stat(filepath.Join(dir, "attendance_2026-08-28.xlsx"))
	require.NoError(t, err)

	rows, err := exporter.Read(date)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, domain.ReportRow{
		EmployeeID: "E1",
		Name:       "Alice Martins",
		Date:       "2026-08-28",
		TimeIn:     "09:00:00",
		TimeOut:    "17:30:15",
		Status:     "Present",
		Duration:   "08:30:15",
	}, rows[0])

	// Open session renders with blank time_out and duration.
	assert.Equal(t, "E2", rows[1].EmployeeID)
	assert.Equal(t, "09:15:00", rows[1].TimeIn)
	assert.Empty(t, rows[1].TimeOut)
	assert.Empty(t, rows[1].Duration)
}

func TestExporter_ExportOverwritesPreviousArtifact(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	lister := &stubLister{sessions: daySessions()[:1]}
	exporter := NewExporter(lister, dir, testLogger())

	require.NoError(t, exporter.Export(context.Background(), date))

	rows, err := exporter.Read(date)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// The ledger gained a row; a full recompute must replace, not append.
	lister.sessions = daySessions()
	require.NoError(t, exporter.Export(context.Background(), date))

	rows, err = exporter.Read(date)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestExporter_ExportIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	exporter := NewExporter(&stubLister{sessions: daySessions()}, dir, testLogger())

	require.NoError(t, exporter.Export(context.Background(), date))
	first, err := exporter.Read(date)
	require.NoError(t, err)

	require.NoError(t, exporter.Export(context.Background(), date))
	second, err := exporter.Read(date)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExporter_ReadMissingArtifact(t *testing.T) {
	exporter := NewExporter(&stubLister{}, t.TempDir(), testLogger())

	rows, err := exporter.Read(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}

func TestExporter_List(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExporter(&stubLister{sessions: daySessions()}, dir, testLogger())

	older := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	require.NoError(t, exporter.Export(context.Background(), older))
	// Force distinct mtimes without sleeping.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, Filename(older)), past, past))
	require.NoError(t, exporter.Export(context.Background(), newer))

	// Strays in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	artifacts, err := exporter.List()
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "attendance_2026-08-28.xlsx", artifacts[0].Filename)
	assert.Equal(t, "attendance_2026-08-27.xlsx", artifacts[1].Filename)
	assert.Positive(t, artifacts[0].SizeBytes)
}

func TestExporter_ListMissingDir(t *testing.T) {
	exporter := NewExporter(&stubLister{}, filepath.Join(t.TempDir(), "absent"), testLogger())

	artifacts, err := exporter.List()

	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{"valid artifact name", "attendance_2026-08-28.xlsx", false},
		{"empty", "", true},
		{"path traversal", "../attendance_2026-08-28.xlsx", true},
		{"embedded traversal", "attendance_..2026.xlsx", true},
		{"forward slash", "reports/attendance_2026-08-28.xlsx", true},
		{"backslash", `reports\attendance_2026-08-28.xlsx`, true},
		{"wrong extension", "attendance_2026-08-28.csv", true},
		{"wrong prefix", "payroll_2026-08-28.xlsx", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidFilename)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExporter_ArtifactPath(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	exporter := NewExporter(&stubLister{sessions: daySessions()}, dir, testLogger())
	require.NoError(t, exporter.Export(context.Background(), date))

	t.Run("existing artifact", func(t *testing.T) {
		path, err := exporter.ArtifactPath(Filename(date))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "attendance_2026-08-28.xlsx"), path)
	})

	t.Run("missing artifact", func(t *testing.T) {
		_, err := exporter.ArtifactPath("attendance_2000-01-01.xlsx")
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := exporter.ArtifactPath("../../etc/passwd")
		assert.ErrorIs(t, err, domain.ErrInvalidFilename)
	})
}
