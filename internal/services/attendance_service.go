package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gym_backend/internal/clock"
	"gym_backend/internal/models"
	"gym_backend/internal/repositories"
)

// --- Custom Service Errors for Attendance ---
var (
	ErrNoActiveMembership = errors.New("client has no valid membership period")
	ErrInvalidToken       = errors.New("check-in token not recognized")
)

// CheckInResult reports the outcome of an entry registration. A repeated
// entry on the same local day is not an error at this layer: the existing
// record is returned with AlreadyRegistered set, and the transport decides
// how to present it.
type CheckInResult struct {
	Record            *models.AttendanceRecord `json:"record"`
	Client            *models.Client           `json:"client"`
	Membership        *models.MembershipPeriod `json:"membership"`
	AlreadyRegistered bool                     `json:"already_registered"`
}

// --- AttendanceService Interface ---
type AttendanceService interface {
	// CheckIn registers an entry for the client, gated on a valid
	// membership period.
	CheckIn(clientID int64) (*CheckInResult, error)
	// CheckInByToken resolves the client from a QR token and registers an
	// entry with the same gating as CheckIn.
	CheckInByToken(token string) (*CheckInResult, error)
	// RegisterExit records an exit. Exits are not gated on membership and
	// may repeat within a day.
	RegisterExit(clientID int64) (*models.AttendanceRecord, error)
	EntriesForDay(day time.Time) ([]models.AttendanceEntry, error)
	EntriesToday() ([]models.AttendanceEntry, error)
}

// --- attendanceService Implementation ---
type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	membershipRepo repositories.MembershipRepository
	clientRepo     repositories.ClientRepository
	clk            *clock.Clock
	db             *sql.DB
}

// NewAttendanceService creates a new instance of AttendanceService.
func NewAttendanceService(
	ar repositories.AttendanceRepository,
	mr repositories.MembershipRepository,
	cr repositories.ClientRepository,
	clk *clock.Clock,
	db *sql.DB,
) AttendanceService {
	return &attendanceService{
		attendanceRepo: ar,
		membershipRepo: mr,
		clientRepo:     cr,
		clk:            clk,
		db:             db,
	}
}

func (s *attendanceService) CheckIn(clientID int64) (*CheckInResult, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to fetch client for check-in: %w", err)
	}
	return s.registerEntry(client)
}

func (s *attendanceService) CheckInByToken(token string) (*CheckInResult, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	client, err := s.clientRepo.GetClientByCheckInToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to resolve check-in token: %w", err)
	}
	return s.registerEntry(client)
}

func (s *attendanceService) registerEntry(client *models.Client) (*CheckInResult, error) {
	today := s.clk.Today()
	start, end := s.clk.DayBounds(today)
	existing, err := s.attendanceRepo.GetEntryForDay(client.ID, start, end)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check today's entry: %w", err)
	}
	if existing != nil {
		// Already checked in today; report it without re-validating the membership.
		return &CheckInResult{Record: existing, Client: client, AlreadyRegistered: true}, nil
	}

	period, err := s.membershipRepo.GetEffectiveActivePeriod(s.db, client.ID, today)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: client %d", ErrNoActiveMembership, client.ID)
		}
		return nil, fmt.Errorf("failed to check membership for entry: %w", err)
	}

	record := &models.AttendanceRecord{
		ClientID:   client.ID,
		RecordedAt: time.Now().UTC(),
		Kind:       models.AttendanceKindEntry,
	}
	if _, err := s.attendanceRepo.CreateRecord(s.db, record); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// Lost a race against a concurrent entry; hand back the winner.
			existing, ferr := s.attendanceRepo.GetEntryForDay(client.ID, start, end)
			if ferr != nil {
				return nil, fmt.Errorf("failed to fetch concurrent entry: %w", ferr)
			}
			return &CheckInResult{Record: existing, Client: client, Membership: period, AlreadyRegistered: true}, nil
		}
		return nil, fmt.Errorf("failed to register entry: %w", err)
	}
	return &CheckInResult{Record: record, Client: client, Membership: period}, nil
}

func (s *attendanceService) RegisterExit(clientID int64) (*models.AttendanceRecord, error) {
	if _, err := s.clientRepo.GetClientByID(clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to fetch client for exit: %w", err)
	}

	record := &models.AttendanceRecord{
		ClientID:   clientID,
		RecordedAt: time.Now().UTC(),
		Kind:       models.AttendanceKindExit,
	}
	if _, err := s.attendanceRepo.CreateRecord(s.db, record); err != nil {
		return nil, fmt.Errorf("failed to register exit: %w", err)
	}
	return record, nil
}

func (s *attendanceService) EntriesForDay(day time.Time) ([]models.AttendanceEntry, error) {
	start, end := s.clk.DayBounds(day)
	entries, err := s.attendanceRepo.GetEntriesForRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for day: %w", err)
	}
	return entries, nil
}

func (s *attendanceService) EntriesToday() ([]models.AttendanceEntry, error) {
	return s.EntriesForDay(s.clk.Today())
}
