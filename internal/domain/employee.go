package domain

import (
	"time"
)

// Embedding is a fixed-length face feature vector produced by the extractor.
// Embeddings are immutable and compared only by cosine similarity.
type Embedding []float64

// Employee representa um funcionário cadastrado no sistema
type Employee struct {
	EmployeeID   string    `json:"employee_id"`
	Name         string    `json:"name"`
	Department   string    `json:"department,omitempty"`
	Position     string    `json:"position,omitempty"`
	Embedding    Embedding `json:"-"`
	ImagePath    string    `json:"-"`
	VectorPath   string    `json:"-"`
	RegisteredAt time.Time `json:"registered_at"`
}
