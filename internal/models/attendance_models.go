package models

import "time"

// Attendance record kinds.
const (
	AttendanceKindEntry = "entry"
	AttendanceKindExit  = "exit"
)

// IsValidAttendanceKind reports whether k is a known record kind.
func IsValidAttendanceKind(k string) bool {
	return k == AttendanceKindEntry || k == AttendanceKindExit
}

// AttendanceRecord is one check-in or check-out event. At most one entry
// per client per local calendar day is allowed; exits are not gated.
type AttendanceRecord struct {
	ID         int64     `json:"id" db:"id"`
	ClientID   int64     `json:"client_id" db:"client_id"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
	Kind       string    `json:"kind" db:"kind"`
}

// AttendanceEntry is one row of the today's-entries listing, joined with
// the client for display.
type AttendanceEntry struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"client_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	NationalID string    `json:"national_id"`
	RecordedAt time.Time `json:"recorded_at"`
}
