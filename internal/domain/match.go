package domain

// Match represents one recognized employee in a frame, ranked by cosine
// similarity against the gallery.
type Match struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
	Department string  `json:"department,omitempty"`
	Position   string  `json:"position,omitempty"`
}

// MarkResult is the complete outcome of processing one attendance frame.
type MarkResult struct {
	Recognized []Match            `json:"recognized_faces"`
	TotalFaces int                `json:"total_faces_detected"`
	Records    []AttendanceRecord `json:"attendance_records"`
}
