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

// --- Custom Service Errors for Membership ---
var (
	ErrNoPriorPlan = errors.New("client has no membership history to renew from")
)

// --- MembershipService Interface ---
type MembershipService interface {
	// EffectiveActivePeriod is the authoritative "is this client currently a
	// paying member" check: status must be active AND the end date must not
	// have passed, per the operational clock. Returns (nil, nil) when there
	// is no such period.
	EffectiveActivePeriod(clientID int64) (*models.MembershipPeriod, error)
	// ActiveOrLastPeriod returns the period with the latest end date,
	// regardless of status, or (nil, nil) when the client has none.
	ActiveOrLastPeriod(clientID int64) (*models.MembershipPeriod, error)
	// ClientMembershipSummary builds the front-desk view of a client's
	// latest period: plan, dates, and days remaining.
	ClientMembershipSummary(clientID int64) (*models.MembershipSummary, error)
	// UpcomingExpirations lists effective-active periods ending within the
	// given number of days (default 3 when zero or negative).
	UpcomingExpirations(withinDays int) ([]models.ExpiringMembership, error)
}

// --- membershipService Implementation ---
type membershipService struct {
	membershipRepo repositories.MembershipRepository
	clientRepo     repositories.ClientRepository
	clk            *clock.Clock
	db             *sql.DB
}

// NewMembershipService creates a new instance of MembershipService.
func NewMembershipService(
	mr repositories.MembershipRepository,
	cr repositories.ClientRepository,
	clk *clock.Clock,
	db *sql.DB,
) MembershipService {
	return &membershipService{
		membershipRepo: mr,
		clientRepo:     cr,
		clk:            clk,
		db:             db,
	}
}

// dateUTC normalizes an instant to UTC midnight of its own calendar day so
// that DATE columns (scanned at UTC midnight) and local-zone "today" values
// compare and subtract cleanly.
func dateUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// periodEffectivelyActive recomputes activity from the end date; the cached
// status alone is never trusted.
func periodEffectivelyActive(period *models.MembershipPeriod, today time.Time) bool {
	return period.Status == models.PeriodStatusActive && !dateUTC(period.EndDate).Before(dateUTC(today))
}

func (s *membershipService) EffectiveActivePeriod(clientID int64) (*models.MembershipPeriod, error) {
	period, err := s.membershipRepo.GetEffectiveActivePeriod(s.db, clientID, s.clk.Today())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get effective active period: %w", err)
	}
	return period, nil
}

func (s *membershipService) ActiveOrLastPeriod(clientID int64) (*models.MembershipPeriod, error) {
	period, err := s.membershipRepo.GetActiveOrLastPeriod(s.db, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest period: %w", err)
	}
	return period, nil
}

func (s *membershipService) ClientMembershipSummary(clientID int64) (*models.MembershipSummary, error) {
	if _, err := s.clientRepo.GetClientByID(clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client for membership summary: %w", err)
	}

	period, err := s.ActiveOrLastPeriod(clientID)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return &models.MembershipSummary{State: models.MembershipStateNone}, nil
	}

	today := s.clk.Today()
	daysRemaining := int(dateUTC(period.EndDate).Sub(dateUTC(today)).Hours() / 24)

	state := models.MembershipStateExpired
	if periodEffectivelyActive(period, today) {
		state = models.MembershipStateActive
	}

	startDate := period.StartDate.Format("2006-01-02")
	endDate := period.EndDate.Format("2006-01-02")
	return &models.MembershipSummary{
		State:         state,
		PlanName:      period.PlanName,
		PlanPrice:     period.PlanPrice,
		StartDate:     &startDate,
		EndDate:       &endDate,
		DaysRemaining: &daysRemaining,
	}, nil
}

func (s *membershipService) UpcomingExpirations(withinDays int) ([]models.ExpiringMembership, error) {
	if withinDays <= 0 {
		withinDays = 3
	}
	today := s.clk.Today()
	limit := today.AddDate(0, 0, withinDays)

	rows, err := s.membershipRepo.GetExpiring(today, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming expirations: %w", err)
	}
	for i := range rows {
		rows[i].DaysRemaining = int(dateUTC(rows[i].EndDate).Sub(dateUTC(today)).Hours() / 24)
	}
	return rows, nil
}
