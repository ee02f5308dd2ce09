package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StatusPresent is the default status for a freshly created session.
const StatusPresent = "Present"

// ClockFormat is the wall clock layout used in records and report cells.
const ClockFormat = "15:04:05"

// Session is one punch-in/punch-out interval for an employee on a calendar
// date. TimeOut is nil while the session is open. "Most recent" ordering is
// by CreatedAt (creation order), never by TimeIn, to tolerate clock anomalies.
type Session struct {
	ID         uuid.UUID  `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Name       string     `json:"name"`
	Date       time.Time  `json:"date"`
	TimeIn     time.Time  `json:"time_in"`
	TimeOut    *time.Time `json:"time_out,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Open reports whether the session has no recorded punch-out yet.
func (s *Session) Open() bool {
	return s.TimeOut == nil
}

// AttendanceEvent is one recognized employee inside a frame, as handed to the
// ledger. It carries identity only; the transition decision is made per
// employee against stored state.
type AttendanceEvent struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
}

// AttendanceRecord is the outcome of applying one event to the ledger.
type AttendanceRecord struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Date       string  `json:"date"`
	TimeIn     string  `json:"time_in"`
	TimeOut    *string `json:"time_out"`
	Status     string  `json:"status"`
}

// ReportRow is a read-only projection of one session as written to (and
// re-parsed from) the daily report artifact. Not a source of truth.
type ReportRow struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	TimeIn     string `json:"time_in"`
	TimeOut    string `json:"time_out"`
	Status     string `json:"status"`
	Duration   string `json:"duration"`
}

// FormatDuration renders the elapsed time between punch-in and punch-out as
// HH:MM:SS. Negative spans clamp to zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
