package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gym_backend/internal/models"

	"github.com/lib/pq"
)

// AttendanceRepository defines the interface for attendance database
// operations. The unique index on (client_id, local day) for entries is
// the authoritative duplicate guard; GetEntryForDay is an optimization.
type AttendanceRepository interface {
	// GetEntryForDay returns the client's entry record inside [start, end),
	// or ErrNotFound.
	GetEntryForDay(clientID int64, start, end time.Time) (*models.AttendanceRecord, error)
	// CreateRecord inserts a record. A duplicate entry for the same client
	// and local day surfaces as ErrDuplicateKey.
	CreateRecord(executor SQLExecutor, record *models.AttendanceRecord) (int64, error)
	// GetEntriesForRange lists entry records inside [start, end), joined
	// with client data, newest first.
	GetEntriesForRange(start, end time.Time) ([]models.AttendanceEntry, error)
}

type attendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetEntryForDay(clientID int64, start, end time.Time) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{}
	query := `SELECT id, client_id, recorded_at, kind
	          FROM attendance_records
	          WHERE client_id = $1 AND kind = $2 AND recorded_at >= $3 AND recorded_at < $4
	          ORDER BY recorded_at ASC LIMIT 1`

	err := r.db.QueryRow(query, clientID, models.AttendanceKindEntry, start, end).Scan(
		&record.ID, &record.ClientID, &record.RecordedAt, &record.Kind,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting entry for client ID %d: %v", ErrDatabaseError, clientID, err)
	}
	return record, nil
}

func (r *attendanceRepository) CreateRecord(executor SQLExecutor, record *models.AttendanceRecord) (int64, error) {
	query := `INSERT INTO attendance_records (client_id, recorded_at, kind)
	          VALUES ($1, $2, $3)
	          RETURNING id`

	if record.RecordedAt.IsZero() {
		record.RecordedAt = time.Now()
	}

	err := executor.QueryRow(query, record.ClientID, record.RecordedAt, record.Kind).Scan(&record.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating attendance record: %v", ErrDatabaseError, err)
	}
	return record.ID, nil
}

func (r *attendanceRepository) GetEntriesForRange(start, end time.Time) ([]models.AttendanceEntry, error) {
	entries := []models.AttendanceEntry{}
	query := `SELECT ar.id, ar.client_id, c.first_name, c.last_name, c.national_id, ar.recorded_at
	          FROM attendance_records ar
	          JOIN clients c ON ar.client_id = c.id
	          WHERE ar.kind = $1 AND ar.recorded_at >= $2 AND ar.recorded_at < $3
	          ORDER BY ar.recorded_at DESC`

	rows, err := r.db.Query(query, models.AttendanceKindEntry, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: querying attendance entries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.AttendanceEntry
		if err := rows.Scan(
			&entry.ID, &entry.ClientID, &entry.FirstName, &entry.LastName,
			&entry.NationalID, &entry.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning attendance entry: %v", ErrDatabaseError, err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating attendance entry rows: %v", ErrDatabaseError, err)
	}
	return entries, nil
}
