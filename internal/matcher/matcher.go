package matcher

import (
	"math"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/gallery"
)

// DefaultThreshold is the minimum cosine similarity for accepting a match.
// Acceptance is strict: a score equal to the threshold does not match.
const DefaultThreshold = 0.65

// CosineSimilarity calculates the cosine similarity between two embedding
// vectors. Returns a value between -1.0 (opposite) and 1.0 (identical).
// Mismatched or empty vectors score 0.
func CosineSimilarity(a, b domain.Embedding) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Match scores each detected embedding against every gallery entry and keeps
// the single best entry per face, accepted only when similarity strictly
// exceeds threshold. Faces below threshold are dropped silently. When the same
// employee is matched by more than one face in the frame, only the first
// occurrence (input order) is kept, so the result holds at most one match per
// identity in first-detection order.
func Match(embeddings []domain.Embedding, snap *gallery.Snapshot, threshold float64) []domain.Match {
	if len(embeddings) == 0 || snap.Len() == 0 {
		return []domain.Match{}
	}

	matches := make([]domain.Match, 0, len(embeddings))
	seen := make(map[string]struct{}, len(embeddings))

	for _, embedding := range embeddings {
		var best *gallery.Entry
		bestSimilarity := 0.0

		for i := range snap.Entries() {
			entry := &snap.Entries()[i]
			similarity := CosineSimilarity(embedding, entry.Embedding)
			if similarity > bestSimilarity {
				bestSimilarity = similarity
				best = entry
			}
		}

		if best == nil || bestSimilarity <= threshold {
			continue
		}

		if _, dup := seen[best.EmployeeID]; dup {
			continue
		}
		seen[best.EmployeeID] = struct{}{}

		matches = append(matches, domain.Match{
			EmployeeID: best.EmployeeID,
			Name:       best.Name,
			Similarity: bestSimilarity,
			Department: best.Department,
			Position:   best.Position,
		})
	}

	return matches
}
