package gallery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// VectorStore persists one reference embedding per employee as a small JSON
// file under the faces directory. Files are the hot-load source for gallery
// refreshes; the database keeps a durable copy of the same vector.
type VectorStore struct {
	dir string
}

// NewVectorStore creates the store, making sure the directory exists.
func NewVectorStore(dir string) (*VectorStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create faces dir: %w", err)
	}
	return &VectorStore{dir: dir}, nil
}

// Path returns the vector file path for an employee.
func (s *VectorStore) Path(employeeID string) string {
	return filepath.Join(s.dir, employeeID+".vec")
}

// Save writes the embedding, replacing any previous file atomically.
func (s *VectorStore) Save(employeeID string, embedding domain.Embedding) error {
	data, err := json.Marshal(embedding)
	if err != nil {
		return fmt.Errorf("marshal embedding: %w", err)
	}

	tmp := s.Path(employeeID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write vector file: %w", err)
	}
	if err := os.Rename(tmp, s.Path(employeeID)); err != nil {
		return fmt.Errorf("rename vector file: %w", err)
	}

	return nil
}

// Load reads an employee's embedding back from disk.
func (s *VectorStore) Load(employeeID string) (domain.Embedding, error) {
	data, err := os.ReadFile(s.Path(employeeID))
	if err != nil {
		return nil, fmt.Errorf("read vector file: %w", err)
	}

	var embedding domain.Embedding
	if err := json.Unmarshal(data, &embedding); err != nil {
		return nil, fmt.Errorf("decode vector file: %w", err)
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("vector file %s is empty", s.Path(employeeID))
	}

	return embedding, nil
}

// Delete removes the vector file. Missing files are not an error; this is the
// registration rollback path.
func (s *VectorStore) Delete(employeeID string) error {
	err := os.Remove(s.Path(employeeID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove vector file: %w", err)
	}
	return nil
}
