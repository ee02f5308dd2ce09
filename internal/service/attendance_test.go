package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/gallery"
)

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordEvents(ctx context.Context, events []domain.AttendanceEvent, now time.Time) ([]domain.AttendanceRecord, error) {
	args := m.Called(ctx, events, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttendanceRecord), args.Error(1)
}

type MockReportReader struct {
	mock.Mock
}

func (m *MockReportReader) Read(date time.Time) ([]domain.ReportRow, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportRow), args.Error(1)
}

type stubGallery struct {
	snap *gallery.Snapshot
}

func (s *stubGallery) Snapshot() *gallery.Snapshot {
	return s.snap
}

type MockAttendanceRepositoryForService struct {
	mock.Mock
}

func (m *MockAttendanceRepositoryForService) LatestForDay(ctx context.Context, employeeID string, date time.Time) (*domain.Session, error) {
	args := m.Called(ctx, employeeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAttendanceRepositoryForService) CreateSession(ctx context.Context, session *domain.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockAttendanceRepositoryForService) CloseSession(ctx context.Context, id uuid.UUID, timeOut time.Time) error {
	return m.Called(ctx, id, timeOut).Error(0)
}

func (m *MockAttendanceRepositoryForService) ListByDate(ctx context.Context, date time.Time) ([]domain.Session, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockAttendanceRepositoryForService) ListRange(ctx context.Context, start, end *time.Time) ([]domain.Session, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

func axisEmbedding(dim, axis int) domain.Embedding {
	e := make(domain.Embedding, dim)
	e[axis] = 1
	return e
}

func testSnapshot() *gallery.Snapshot {
	return gallery.NewSnapshot([]gallery.Entry{
		{EmployeeID: "E1", Name: "Alice Martins", Embedding: axisEmbedding(4, 0)},
		{EmployeeID: "E2", Name: "Bruno Costa", Embedding: axisEmbedding(4, 1)},
	})
}

func newAttendanceService(ext *MockExtractor, g SnapshotProvider, recorder *MockRecorder, reader *MockReportReader, sessions *MockAttendanceRepositoryForService) *AttendanceService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAttendanceService(ext, g, recorder, reader, sessions, 0.65, logger)
}

func TestAttendanceService_Mark(t *testing.T) {
	frameTime := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	image := []byte("frame-bytes")

	t.Run("recognized face produces a record", func(t *testing.T) {
		ext := new(MockExtractor)
		recorder := new(MockRecorder)
		reader := new(MockReportReader)

		ext.On("Represent", mock.Anything, image).
			Return([]domain.Embedding{axisEmbedding(4, 0)}, nil)
		recorder.On("RecordEvents", mock.Anything,
			[]domain.AttendanceEvent{{EmployeeID: "E1", Name: "Alice Martins"}}, frameTime).
			Return([]domain.AttendanceRecord{{EmployeeID: "E1", Name: "Alice Martins"}}, nil)

		svc := newAttendanceService(ext, &stubGallery{snap: testSnapshot()}, recorder, reader, nil).
			WithClock(func() time.Time { return frameTime })

		result, err := svc.Mark(context.Background(), image)

		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalFaces)
		require.Len(t, result.Recognized, 1)
		assert.Equal(t, "E1", result.Recognized[0].EmployeeID)
		assert.Len(t, result.Records, 1)

		recorder.AssertExpectations(t)
	})

	t.Run("zero faces is an extraction failure", func(t *testing.T) {
		ext := new(MockExtractor)
		recorder := new(MockRecorder)

		ext.On("Represent", mock.Anything, image).Return([]domain.Embedding{}, nil)

		svc := newAttendanceService(ext, &stubGallery{snap: testSnapshot()}, recorder, new(MockReportReader), nil)
		_, err := svc.Mark(context.Background(), image)

		assert.ErrorIs(t, err, domain.ErrNoFaceDetected)
		recorder.AssertNotCalled(t, "RecordEvents", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unrecognized faces still reach the ledger as an empty batch", func(t *testing.T) {
		ext := new(MockExtractor)
		recorder := new(MockRecorder)

		// A face orthogonal to every reference scores 0 and matches nobody.
		ext.On("Represent", mock.Anything, image).
			Return([]domain.Embedding{axisEmbedding(4, 3)}, nil)
		recorder.On("RecordEvents", mock.Anything, []domain.AttendanceEvent{}, mock.Anything).
			Return([]domain.AttendanceRecord{}, nil)

		svc := newAttendanceService(ext, &stubGallery{snap: testSnapshot()}, recorder, new(MockReportReader), nil)
		result, err := svc.Mark(context.Background(), image)

		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalFaces)
		assert.Empty(t, result.Recognized)
		assert.Empty(t, result.Records)
	})

	t.Run("empty image rejected", func(t *testing.T) {
		svc := newAttendanceService(new(MockExtractor), &stubGallery{snap: testSnapshot()},
			new(MockRecorder), new(MockReportReader), nil)

		_, err := svc.Mark(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrValidationFailed)
	})

	t.Run("extractor failure surfaces", func(t *testing.T) {
		ext := new(MockExtractor)
		ext.On("Represent", mock.Anything, image).Return(nil, domain.ErrInvalidImage)

		svc := newAttendanceService(ext, &stubGallery{snap: testSnapshot()},
			new(MockRecorder), new(MockReportReader), nil)

		_, err := svc.Mark(context.Background(), image)
		assert.ErrorIs(t, err, domain.ErrInvalidImage)
	})
}

func TestAttendanceService_Today(t *testing.T) {
	frameTime := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	reader := new(MockReportReader)
	reader.On("Read", today).Return([]domain.ReportRow{{EmployeeID: "E1"}}, nil)

	svc := newAttendanceService(new(MockExtractor), &stubGallery{snap: testSnapshot()},
		new(MockRecorder), reader, nil).
		WithClock(func() time.Time { return frameTime })

	rows, err := svc.Today()

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "E1", rows[0].EmployeeID)
	reader.AssertExpectations(t)
}

func TestAttendanceService_History(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	t.Run("range query hits the ledger", func(t *testing.T) {
		sessions := new(MockAttendanceRepositoryForService)
		sessions.On("ListRange", mock.Anything, &start, &end).
			Return([]domain.Session{{EmployeeID: "E1"}}, nil)

		svc := newAttendanceService(new(MockExtractor), &stubGallery{snap: testSnapshot()},
			new(MockRecorder), new(MockReportReader), sessions)

		got, err := svc.History(context.Background(), &start, &end)

		require.NoError(t, err)
		require.Len(t, got, 1)
		sessions.AssertExpectations(t)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		svc := newAttendanceService(new(MockExtractor), &stubGallery{snap: testSnapshot()},
			new(MockRecorder), new(MockReportReader), new(MockAttendanceRepositoryForService))

		_, err := svc.History(context.Background(), &end, &start)
		assert.ErrorIs(t, err, domain.ErrValidationFailed)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		sessions := new(MockAttendanceRepositoryForService)
		sessions.On("ListRange", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).
			Return(nil, errors.New("connection refused"))

		svc := newAttendanceService(new(MockExtractor), &stubGallery{snap: testSnapshot()},
			new(MockRecorder), new(MockReportReader), sessions)

		_, err := svc.History(context.Background(), nil, nil)
		assert.Error(t, err)
	})
}
