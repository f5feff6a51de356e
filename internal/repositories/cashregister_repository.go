package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gym_backend/internal/models"

	"github.com/lib/pq"
)

// CashRegisterRepository defines the interface for cash-register-closing
// database operations. Closings are point-in-time snapshots: created once
// per calendar date, never updated.
type CashRegisterRepository interface {
	// CreateClosing persists a closing. A second closing for the same date
	// surfaces as ErrDuplicateKey via the unique constraint on closing_date.
	CreateClosing(executor SQLExecutor, closing *models.CashRegisterClosing) (int64, error)
	GetClosingByDate(date time.Time) (*models.CashRegisterClosing, error)
	// GetClosings lists stored closings, newest date first, optionally
	// restricted to [from, to] dates.
	GetClosings(from, to *time.Time) ([]models.CashRegisterClosing, error)
}

type cashRegisterRepository struct {
	db *sql.DB
}

// NewCashRegisterRepository creates a new instance of CashRegisterRepository.
func NewCashRegisterRepository(db *sql.DB) CashRegisterRepository {
	return &cashRegisterRepository{db: db}
}

const closingColumns = `id, closing_date, operator_id,
	system_total, system_cash, system_card, system_transfer,
	declared_cash, declared_card, declared_transfer,
	variance_cash, variance_card, variance_transfer, variance_total,
	notes, created_at`

func scanClosing(row scanner) (*models.CashRegisterClosing, error) {
	closing := &models.CashRegisterClosing{}
	err := row.Scan(
		&closing.ID, &closing.ClosingDate, &closing.OperatorID,
		&closing.SystemTotal, &closing.SystemCash, &closing.SystemCard, &closing.SystemTransfer,
		&closing.DeclaredCash, &closing.DeclaredCard, &closing.DeclaredTransfer,
		&closing.VarianceCash, &closing.VarianceCard, &closing.VarianceTransfer, &closing.VarianceTotal,
		&closing.Notes, &closing.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning cash register closing: %v", ErrDatabaseError, err)
	}
	return closing, nil
}

func (r *cashRegisterRepository) CreateClosing(executor SQLExecutor, closing *models.CashRegisterClosing) (int64, error) {
	query := `INSERT INTO cash_register_closings
	            (closing_date, operator_id,
	             system_total, system_cash, system_card, system_transfer,
	             declared_cash, declared_card, declared_transfer,
	             variance_cash, variance_card, variance_transfer, variance_total,
	             notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id, created_at`

	closing.CreatedAt = time.Now()
	err := executor.QueryRow(query,
		closing.ClosingDate.Format("2006-01-02"), closing.OperatorID,
		closing.SystemTotal, closing.SystemCash, closing.SystemCard, closing.SystemTransfer,
		closing.DeclaredCash, closing.DeclaredCard, closing.DeclaredTransfer,
		closing.VarianceCash, closing.VarianceCard, closing.VarianceTransfer, closing.VarianceTotal,
		closing.Notes, closing.CreatedAt,
	).Scan(&closing.ID, &closing.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating cash register closing: %v", ErrDatabaseError, err)
	}
	return closing.ID, nil
}

func (r *cashRegisterRepository) GetClosingByDate(date time.Time) (*models.CashRegisterClosing, error) {
	query := `SELECT ` + closingColumns + ` FROM cash_register_closings WHERE closing_date = $1`
	return scanClosing(r.db.QueryRow(query, date.Format("2006-01-02")))
}

func (r *cashRegisterRepository) GetClosings(from, to *time.Time) ([]models.CashRegisterClosing, error) {
	closings := []models.CashRegisterClosing{}

	query := `SELECT ` + closingColumns + ` FROM cash_register_closings`
	var conditions []string
	var args []interface{}
	if from != nil {
		args = append(args, from.Format("2006-01-02"))
		conditions = append(conditions, fmt.Sprintf("closing_date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, to.Format("2006-01-02"))
		conditions = append(conditions, fmt.Sprintf("closing_date <= $%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY closing_date DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying cash register closings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		closing, scanErr := scanClosing(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		closings = append(closings, *closing)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating cash register closing rows: %v", ErrDatabaseError, err)
	}
	return closings, nil
}
