package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gym_backend/internal/models"

	"github.com/lib/pq"
)

// MembershipRepository defines the interface for membership-period
// database operations (the ledger of purchased spans).
type MembershipRepository interface {
	// GetActiveOrLastPeriod returns the period with the latest end date for
	// the client, regardless of status. Used to resolve "last plan" for a
	// renewal without an explicit plan selection.
	GetActiveOrLastPeriod(executor SQLExecutor, clientID int64) (*models.MembershipPeriod, error)
	// GetEffectiveActivePeriod returns the period with status=active AND
	// end_date >= today, or ErrNotFound. The cached status alone is never
	// sufficient; today comes from the application clock.
	GetEffectiveActivePeriod(executor SQLExecutor, clientID int64, today time.Time) (*models.MembershipPeriod, error)
	// CloseAllActive transitions every active period of the client to
	// expired. Must run in the same transaction as the creation of a new
	// period for the client.
	CloseAllActive(executor SQLExecutor, clientID int64) error
	CreatePeriod(executor SQLExecutor, period *models.MembershipPeriod) (int64, error)
	GetPeriodByID(id int64) (*models.MembershipPeriod, error)
	// GetExpiring lists effective-active periods whose end date falls in
	// [today, limit], joined with client data, soonest first.
	GetExpiring(today, limit time.Time) ([]models.ExpiringMembership, error)
}

type membershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a new instance of MembershipRepository.
func NewMembershipRepository(db *sql.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

const periodSelect = `
	SELECT mp.id, mp.client_id, mp.plan_id, mp.start_date, mp.end_date, mp.status,
	       mp.created_at, mp.updated_at, p.name, p.price
	FROM membership_periods mp
	JOIN membership_plans p ON mp.plan_id = p.id
`

func scanPeriod(row scanner) (*models.MembershipPeriod, error) {
	period := &models.MembershipPeriod{}
	err := row.Scan(
		&period.ID, &period.ClientID, &period.PlanID, &period.StartDate, &period.EndDate,
		&period.Status, &period.CreatedAt, &period.UpdatedAt,
		&period.PlanName, &period.PlanPrice,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning membership period: %v", ErrDatabaseError, err)
	}
	return period, nil
}

func (r *membershipRepository) GetActiveOrLastPeriod(executor SQLExecutor, clientID int64) (*models.MembershipPeriod, error) {
	query := periodSelect + ` WHERE mp.client_id = $1 ORDER BY mp.end_date DESC, mp.id DESC LIMIT 1`
	return scanPeriod(executor.QueryRow(query, clientID))
}

func (r *membershipRepository) GetEffectiveActivePeriod(executor SQLExecutor, clientID int64, today time.Time) (*models.MembershipPeriod, error) {
	query := periodSelect + ` WHERE mp.client_id = $1 AND mp.status = $2 AND mp.end_date >= $3
	          ORDER BY mp.end_date DESC LIMIT 1`
	return scanPeriod(executor.QueryRow(query, clientID, models.PeriodStatusActive, today.Format("2006-01-02")))
}

func (r *membershipRepository) CloseAllActive(executor SQLExecutor, clientID int64) error {
	query := `UPDATE membership_periods SET status = $1, updated_at = $2
	          WHERE client_id = $3 AND status = $4`
	if _, err := executor.Exec(query, models.PeriodStatusExpired, time.Now(), clientID, models.PeriodStatusActive); err != nil {
		return fmt.Errorf("%w: closing active periods for client ID %d: %v", ErrDatabaseError, clientID, err)
	}
	return nil
}

// CreatePeriod inserts a new period. The partial unique index on
// (client_id) WHERE status='active' makes a concurrent second activation
// surface as ErrDuplicateKey.
func (r *membershipRepository) CreatePeriod(executor SQLExecutor, period *models.MembershipPeriod) (int64, error) {
	query := `INSERT INTO membership_periods (client_id, plan_id, start_date, end_date, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	currentTime := time.Now()
	period.CreatedAt = currentTime
	period.UpdatedAt = currentTime
	if period.Status == "" {
		period.Status = models.PeriodStatusActive
	}

	err := executor.QueryRow(query,
		period.ClientID, period.PlanID,
		period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"),
		period.Status, period.CreatedAt, period.UpdatedAt,
	).Scan(&period.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating membership period: %v", ErrDatabaseError, err)
	}
	return period.ID, nil
}

func (r *membershipRepository) GetPeriodByID(id int64) (*models.MembershipPeriod, error) {
	query := periodSelect + ` WHERE mp.id = $1`
	period, err := scanPeriod(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting membership period by ID %d: %w", id, err)
	}
	return period, nil
}

func (r *membershipRepository) GetExpiring(today, limit time.Time) ([]models.ExpiringMembership, error) {
	rows := []models.ExpiringMembership{}
	query := `SELECT mp.id, c.id, c.first_name, c.last_name, c.national_id, p.name, mp.end_date
	          FROM membership_periods mp
	          JOIN clients c ON mp.client_id = c.id
	          JOIN membership_plans p ON mp.plan_id = p.id
	          WHERE mp.status = $1 AND mp.end_date >= $2 AND mp.end_date <= $3
	          ORDER BY mp.end_date ASC`

	result, err := r.db.Query(query, models.PeriodStatusActive, today.Format("2006-01-02"), limit.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("%w: querying expiring memberships: %v", ErrDatabaseError, err)
	}
	defer result.Close()

	for result.Next() {
		var row models.ExpiringMembership
		if err := result.Scan(
			&row.PeriodID, &row.ClientID, &row.FirstName, &row.LastName,
			&row.NationalID, &row.PlanName, &row.EndDate,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning expiring membership: %v", ErrDatabaseError, err)
		}
		rows = append(rows, row)
	}
	if err = result.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating expiring membership rows: %v", ErrDatabaseError, err)
	}
	return rows, nil
}
