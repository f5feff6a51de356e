package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gym_backend/internal/models"

	"github.com/lib/pq"
)

// PlanRepository defines the interface for membership-plan database operations.
type PlanRepository interface {
	CreatePlan(executor SQLExecutor, plan *models.MembershipPlan) (int64, error)
	GetPlanByID(id int64) (*models.MembershipPlan, error)
	GetPlans() ([]models.MembershipPlan, error)
	UpdatePlan(executor SQLExecutor, plan *models.MembershipPlan) error
	DeletePlan(executor SQLExecutor, id int64) error
}

type planRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new instance of PlanRepository.
func NewPlanRepository(db *sql.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) CreatePlan(executor SQLExecutor, plan *models.MembershipPlan) (int64, error) {
	query := `INSERT INTO membership_plans (name, description, duration_days, price, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	currentTime := time.Now()
	plan.CreatedAt = currentTime
	plan.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		plan.Name, plan.Description, plan.DurationDays, plan.Price,
		plan.CreatedAt, plan.UpdatedAt,
	).Scan(&plan.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating membership plan: %v", ErrDatabaseError, err)
	}
	return plan.ID, nil
}

func (r *planRepository) GetPlanByID(id int64) (*models.MembershipPlan, error) {
	plan := &models.MembershipPlan{}
	query := `SELECT id, name, description, duration_days, price, created_at, updated_at
	          FROM membership_plans WHERE id = $1`

	err := r.db.QueryRow(query, id).Scan(
		&plan.ID, &plan.Name, &plan.Description, &plan.DurationDays, &plan.Price,
		&plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting membership plan by ID %d: %v", ErrDatabaseError, id, err)
	}
	return plan, nil
}

func (r *planRepository) GetPlans() ([]models.MembershipPlan, error) {
	plans := []models.MembershipPlan{}
	query := `SELECT id, name, description, duration_days, price, created_at, updated_at
	          FROM membership_plans ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying membership plans: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var plan models.MembershipPlan
		if err := rows.Scan(
			&plan.ID, &plan.Name, &plan.Description, &plan.DurationDays, &plan.Price,
			&plan.CreatedAt, &plan.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning membership plan: %v", ErrDatabaseError, err)
		}
		plans = append(plans, plan)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating membership plan rows: %v", ErrDatabaseError, err)
	}
	return plans, nil
}

// UpdatePlan edits name/description/duration/price. Already-issued periods
// keep the end date they were created with.
func (r *planRepository) UpdatePlan(executor SQLExecutor, plan *models.MembershipPlan) error {
	query := `UPDATE membership_plans SET
	            name = $1, description = $2, duration_days = $3, price = $4, updated_at = $5
	          WHERE id = $6`

	plan.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		plan.Name, plan.Description, plan.DurationDays, plan.Price,
		plan.UpdatedAt, plan.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating membership plan ID %d: %v", ErrDatabaseError, plan.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating plan ID %d: %v", ErrDatabaseError, plan.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *planRepository) DeletePlan(executor SQLExecutor, id int64) error {
	query := `DELETE FROM membership_plans WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: plan ID %d is referenced by membership periods (constraint: %s)", ErrDatabaseError, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting membership plan ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting plan ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
