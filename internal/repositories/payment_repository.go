package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"gym_backend/internal/models"

	"github.com/shopspring/decimal"
)

// PaymentRepository defines the interface for payment database operations.
// Payments are append-only; there are no update or delete methods.
type PaymentRepository interface {
	CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error)
	// GetPaymentsForRange lists payments whose paid_at falls in [start, end),
	// joined with client data, newest first. The bounds are UTC instants
	// produced by the application clock for one local day.
	GetPaymentsForRange(start, end time.Time) ([]models.Payment, error)
	// SumByMethodForRange computes per-method and overall totals for
	// payments in [start, end).
	SumByMethodForRange(executor SQLExecutor, start, end time.Time) (*models.DailyPaymentsSummary, error)
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error) {
	query := `INSERT INTO payments (client_id, period_id, amount, method, paid_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}

	err := executor.QueryRow(query,
		payment.ClientID, payment.PeriodID, payment.Amount, payment.Method,
		payment.PaidAt, time.Now(),
	).Scan(&payment.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating payment: %v", ErrDatabaseError, err)
	}
	return payment.ID, nil
}

func (r *paymentRepository) GetPaymentsForRange(start, end time.Time) ([]models.Payment, error) {
	payments := []models.Payment{}
	query := `SELECT pay.id, pay.client_id, pay.period_id, pay.amount, pay.method, pay.paid_at,
	                 c.first_name, c.last_name, c.national_id
	          FROM payments pay
	          JOIN clients c ON pay.client_id = c.id
	          WHERE pay.paid_at >= $1 AND pay.paid_at < $2
	          ORDER BY pay.paid_at DESC`

	rows, err := r.db.Query(query, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID, &p.ClientID, &p.PeriodID, &p.Amount, &p.Method, &p.PaidAt,
			&p.ClientFirstName, &p.ClientLastName, &p.ClientNationalID,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning payment: %v", ErrDatabaseError, err)
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating payment rows: %v", ErrDatabaseError, err)
	}
	return payments, nil
}

func (r *paymentRepository) SumByMethodForRange(executor SQLExecutor, start, end time.Time) (*models.DailyPaymentsSummary, error) {
	query := `SELECT
	            COALESCE(SUM(amount), 0),
	            COALESCE(SUM(amount) FILTER (WHERE method = $3), 0),
	            COALESCE(SUM(amount) FILTER (WHERE method = $4), 0),
	            COALESCE(SUM(amount) FILTER (WHERE method = $5), 0)
	          FROM payments
	          WHERE paid_at >= $1 AND paid_at < $2`

	summary := &models.DailyPaymentsSummary{
		Total:    decimal.Zero,
		Cash:     decimal.Zero,
		Card:     decimal.Zero,
		Transfer: decimal.Zero,
	}
	err := executor.QueryRow(query, start, end,
		models.PaymentMethodCash, models.PaymentMethodCard, models.PaymentMethodTransfer,
	).Scan(&summary.Total, &summary.Cash, &summary.Card, &summary.Transfer)
	if err != nil {
		return nil, fmt.Errorf("%w: summing payments by method: %v", ErrDatabaseError, err)
	}
	return summary, nil
}
