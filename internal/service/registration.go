package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/extractor"
	"github.com/saturnino-fabrica-de-software/ponto/internal/gallery"
	"github.com/saturnino-fabrica-de-software/ponto/internal/repository"
)

// GalleryRefresher picks up newly registered references for matching.
type GalleryRefresher interface {
	Refresh(ctx context.Context) error
}

// RegisterInput carries one registration request.
type RegisterInput struct {
	EmployeeID string
	Name       string
	Department string
	Position   string
	Image      []byte
}

// RegistrationService enrolls employees: one face image in, one reference
// embedding out, persisted to the vector store and the database.
type RegistrationService struct {
	employees repository.EmployeeRepositoryInterface
	extractor extractor.Extractor
	store     *gallery.VectorStore
	gallery   GalleryRefresher
	facesDir  string
	logger    *slog.Logger
}

func NewRegistrationService(
	employees repository.EmployeeRepositoryInterface,
	ext extractor.Extractor,
	store *gallery.VectorStore,
	g GalleryRefresher,
	facesDir string,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		employees: employees,
		extractor: ext,
		store:     store,
		gallery:   g,
		facesDir:  facesDir,
		logger:    logger,
	}
}

// Register enrolls a new employee. The uploaded image must contain exactly
// one face. Any failure after the image lands on disk rolls the files back,
// so a rejected registration leaves no state behind.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (*domain.Employee, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	exists, err := s.employees.Exists(ctx, input.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("check employee id: %w", err)
	}
	if exists {
		return nil, domain.ErrEmployeeExists
	}

	imagePath, err := s.saveImage(input.EmployeeID, input.Name, input.Image)
	if err != nil {
		return nil, err
	}

	embedding, err := s.extractEmbedding(ctx, input.Image)
	if err != nil {
		s.removeFile(imagePath)
		return nil, err
	}

	if err := s.store.Save(input.EmployeeID, embedding); err != nil {
		s.removeFile(imagePath)
		return nil, fmt.Errorf("save vector file: %w", err)
	}

	employee := &domain.Employee{
		EmployeeID: input.EmployeeID,
		Name:       input.Name,
		Department: input.Department,
		Position:   input.Position,
		Embedding:  embedding,
		ImagePath:  imagePath,
		VectorPath: s.store.Path(input.EmployeeID),
	}

	if err := s.employees.Create(ctx, employee); err != nil {
		s.removeFile(imagePath)
		if delErr := s.store.Delete(input.EmployeeID); delErr != nil {
			s.logger.Warn("rollback of vector file failed",
				slog.String("employee_id", input.EmployeeID),
				slog.Any("error", delErr),
			)
		}
		return nil, err
	}

	if err := s.gallery.Refresh(ctx); err != nil {
		// The employee is persisted; matching catches up on the next refresh.
		s.logger.Warn("gallery refresh after registration failed",
			slog.String("employee_id", input.EmployeeID),
			slog.Any("error", err),
		)
	}

	s.logger.Info("employee registered",
		slog.String("employee_id", employee.EmployeeID),
		slog.String("name", employee.Name),
	)

	return employee, nil
}

// CheckAvailability reports whether an employee id is still free.
func (s *RegistrationService) CheckAvailability(ctx context.Context, employeeID string) (bool, error) {
	if strings.TrimSpace(employeeID) == "" {
		return false, domain.ErrValidationFailed.WithError(fmt.Errorf("employee_id is required"))
	}

	exists, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return false, fmt.Errorf("check employee id: %w", err)
	}
	return !exists, nil
}

// ListEmployees returns every registered employee in registration order.
func (s *RegistrationService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *RegistrationService) extractEmbedding(ctx context.Context, image []byte) (domain.Embedding, error) {
	embeddings, err := s.extractor.Represent(ctx, image)
	if err != nil {
		return nil, err
	}

	switch len(embeddings) {
	case 0:
		return nil, domain.ErrNoFaceDetected
	case 1:
		return embeddings[0], nil
	default:
		return nil, domain.ErrMultipleFaces
	}
}

func (s *RegistrationService) saveImage(employeeID, name string, image []byte) (string, error) {
	if err := os.MkdirAll(s.facesDir, 0o755); err != nil {
		return "", fmt.Errorf("create faces dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.jpg", employeeID, sanitizeName(name))
	path := filepath.Join(s.facesDir, filename)

	if err := os.WriteFile(path, image, 0o644); err != nil {
		return "", fmt.Errorf("save face image: %w", err)
	}
	return path, nil
}

func (s *RegistrationService) removeFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("rollback of face image failed",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}

func validateInput(input RegisterInput) error {
	var problems []string
	if strings.TrimSpace(input.EmployeeID) == "" {
		problems = append(problems, "employee_id is required")
	}
	if !isSafeID(input.EmployeeID) {
		problems = append(problems, "employee_id may only contain letters, digits, '-' and '_'")
	}
	if strings.TrimSpace(input.Name) == "" {
		problems = append(problems, "name is required")
	}
	if len(input.Image) == 0 {
		problems = append(problems, "image is required")
	}
	if len(problems) > 0 {
		return domain.ErrValidationFailed.WithError(fmt.Errorf("%s", strings.Join(problems, "; ")))
	}
	return nil
}

// isSafeID keeps employee ids usable as file name components.
func isSafeID(id string) bool {
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// sanitizeName reduces a display name to a safe lowercase file name chunk.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "employee"
	}
	return b.String()
}
