package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// Entry is one registered employee held for matching.
type Entry struct {
	EmployeeID string
	Name       string
	Department string
	Position   string
	Embedding  domain.Embedding
}

// Snapshot is an immutable view of the gallery. Entries keep registration
// order, which makes matcher iteration deterministic per snapshot.
type Snapshot struct {
	entries []Entry
	version uint64
}

// NewSnapshot builds a standalone snapshot from explicit entries, mainly for
// tests and tooling. Service code gets snapshots from a Gallery.
func NewSnapshot(entries []Entry) *Snapshot {
	return &Snapshot{entries: entries}
}

// Entries returns the ordered gallery entries. Callers must not mutate them.
func (s *Snapshot) Entries() []Entry {
	if s == nil {
		return nil
	}
	return s.entries
}

// Len returns the number of registered references in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Version identifies the refresh that produced this snapshot.
func (s *Snapshot) Version() uint64 {
	if s == nil {
		return 0
	}
	return s.version
}

// EmployeeLister is the slice of the employee repository the gallery needs.
type EmployeeLister interface {
	List(ctx context.Context) ([]domain.Employee, error)
}

// Gallery owns the current snapshot. Refresh builds a complete replacement
// and swaps it in one atomic store, so concurrent readers never observe a
// partially rebuilt gallery.
type Gallery struct {
	repo    EmployeeLister
	store   *VectorStore
	logger  *slog.Logger
	current atomic.Pointer[Snapshot]
	version atomic.Uint64
}

// New creates an empty gallery. Call Refresh to populate it.
func New(repo EmployeeLister, store *VectorStore, logger *slog.Logger) *Gallery {
	g := &Gallery{
		repo:   repo,
		store:  store,
		logger: logger,
	}
	g.current.Store(&Snapshot{})
	return g
}

// Snapshot returns the current immutable view. Never nil.
func (g *Gallery) Snapshot() *Snapshot {
	return g.current.Load()
}

// Refresh rebuilds the snapshot from the vector files of every registered
// employee. A missing or corrupt file falls back to the embedding column in
// the database and the file is rewritten; an employee with neither is skipped
// with a warning rather than failing the whole refresh.
func (g *Gallery) Refresh(ctx context.Context) error {
	employees, err := g.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh gallery: %w", err)
	}

	entries := make([]Entry, 0, len(employees))
	for _, emp := range employees {
		embedding, err := g.store.Load(emp.EmployeeID)
		if err != nil {
			if len(emp.Embedding) == 0 {
				g.logger.Warn("skipping employee with no usable embedding",
					slog.String("employee_id", emp.EmployeeID),
					slog.Any("error", err),
				)
				continue
			}

			embedding = emp.Embedding
			if saveErr := g.store.Save(emp.EmployeeID, embedding); saveErr != nil {
				g.logger.Warn("failed to rewrite vector file from database copy",
					slog.String("employee_id", emp.EmployeeID),
					slog.Any("error", saveErr),
				)
			}
		}

		entries = append(entries, Entry{
			EmployeeID: emp.EmployeeID,
			Name:       emp.Name,
			Department: emp.Department,
			Position:   emp.Position,
			Embedding:  embedding,
		})
	}

	snap := &Snapshot{
		entries: entries,
		version: g.version.Add(1),
	}
	g.current.Store(snap)

	g.logger.Info("gallery refreshed",
		slog.Int("employees", len(entries)),
		slog.Uint64("version", snap.version),
	)

	return nil
}
