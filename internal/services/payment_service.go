package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gym_backend/internal/clock"
	"gym_backend/internal/models"
	"gym_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Payment ---
var (
	ErrMembershipStillActive = errors.New("client already has a valid membership period")
	ErrInvalidPaymentMethod  = errors.New("payment method must be cash, card or transfer")
	ErrPaymentValidation     = errors.New("payment data validation error")
)

// --- Payment DTOs ---
type RecordPaymentRequest struct {
	ClientID int64 `json:"client_id" binding:"required"`
	// PlanID is optional; when omitted, the plan of the client's latest
	// period is reused.
	PlanID *int64 `json:"plan_id"`
	// Amount is optional; when omitted, the plan's list price is charged.
	// A supplied amount overrides the list price (discounts/adjustments)
	// and is not checked against it.
	Amount *decimal.Decimal `json:"amount"`
	Method string           `json:"method" binding:"required"`
}

// PaymentResult is the outcome of a pay-and-renew operation.
type PaymentResult struct {
	Period  *models.MembershipPeriod `json:"period"`
	Payment *models.Payment          `json:"payment"`
}

// DailyPayments is the daily list + summary returned to the cashbox view.
type DailyPayments struct {
	Payments []models.Payment             `json:"payments"`
	Summary  *models.DailyPaymentsSummary `json:"summary"`
}

// --- PaymentService Interface ---
type PaymentService interface {
	// RecordPaymentAndActivate runs the pay-and-renew unit atomically:
	// reject if a valid period exists, resolve the plan, close prior active
	// periods, open the new one, and record the payment against it.
	RecordPaymentAndActivate(req RecordPaymentRequest) (*PaymentResult, error)
	// PaymentsForDay lists payments whose local day equals the given day,
	// with per-method totals.
	PaymentsForDay(day time.Time) (*DailyPayments, error)
	PaymentsToday() (*DailyPayments, error)
}

// --- paymentService Implementation ---
type paymentService struct {
	paymentRepo    repositories.PaymentRepository
	membershipRepo repositories.MembershipRepository
	planRepo       repositories.PlanRepository
	clientRepo     repositories.ClientRepository
	clk            *clock.Clock
	db             *sql.DB // for managing transactions
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(
	pr repositories.PaymentRepository,
	mr repositories.MembershipRepository,
	plr repositories.PlanRepository,
	cr repositories.ClientRepository,
	clk *clock.Clock,
	db *sql.DB,
) PaymentService {
	return &paymentService{
		paymentRepo:    pr,
		membershipRepo: mr,
		planRepo:       plr,
		clientRepo:     cr,
		clk:            clk,
		db:             db,
	}
}

func (s *paymentService) RecordPaymentAndActivate(req RecordPaymentRequest) (*PaymentResult, error) {
	if !models.IsValidPaymentMethod(req.Method) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.Method)
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrPaymentValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	// Row-lock the client so concurrent renewals for the same client
	// serialize here; the partial unique index on active periods is the
	// fallback guard.
	if _, err := s.clientRepo.GetClientForUpdate(tx, req.ClientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to lock client for payment: %w", err)
	}

	today := s.clk.Today()
	current, err := s.membershipRepo.GetEffectiveActivePeriod(tx, req.ClientID, today)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check current membership: %w", err)
	}
	if current != nil {
		return nil, fmt.Errorf("%w: valid until %s", ErrMembershipStillActive, current.EndDate.Format("2006-01-02"))
	}

	plan, err := s.resolvePlan(tx, req.ClientID, req.PlanID)
	if err != nil {
		return nil, err
	}

	amount := plan.Price
	if req.Amount != nil {
		amount = *req.Amount
	}

	if err := s.membershipRepo.CloseAllActive(tx, req.ClientID); err != nil {
		return nil, fmt.Errorf("failed to close prior periods: %w", err)
	}

	period := &models.MembershipPeriod{
		ClientID:  req.ClientID,
		PlanID:    plan.ID,
		StartDate: today,
		EndDate:   today.AddDate(0, 0, plan.DurationDays),
		Status:    models.PeriodStatusActive,
		PlanName:  plan.Name,
		PlanPrice: plan.Price,
	}
	if _, err := s.membershipRepo.CreatePeriod(tx, period); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// Lost a race against a concurrent renewal for the same client.
			return nil, fmt.Errorf("%w: concurrent renewal detected", ErrMembershipStillActive)
		}
		return nil, fmt.Errorf("failed to create membership period: %w", err)
	}

	payment := &models.Payment{
		ClientID: req.ClientID,
		PeriodID: &period.ID,
		Amount:   amount,
		Method:   req.Method,
		PaidAt:   time.Now().UTC(),
	}
	if _, err := s.paymentRepo.CreatePayment(tx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment transaction: %w", err)
	}
	return &PaymentResult{Period: period, Payment: payment}, nil
}

// resolvePlan picks the explicit plan when given, else falls back to the
// plan of the client's latest period.
func (s *paymentService) resolvePlan(executor repositories.SQLExecutor, clientID int64, planID *int64) (*models.MembershipPlan, error) {
	if planID != nil {
		plan, err := s.planRepo.GetPlanByID(*planID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrPlanNotFound
			}
			return nil, fmt.Errorf("failed to resolve plan: %w", err)
		}
		return plan, nil
	}

	last, err := s.membershipRepo.GetActiveOrLastPeriod(executor, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoPriorPlan
		}
		return nil, fmt.Errorf("failed to resolve last plan: %w", err)
	}
	plan, err := s.planRepo.GetPlanByID(last.PlanID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoPriorPlan
		}
		return nil, fmt.Errorf("failed to resolve plan of last period: %w", err)
	}
	return plan, nil
}

func (s *paymentService) PaymentsForDay(day time.Time) (*DailyPayments, error) {
	start, end := s.clk.DayBounds(day)

	payments, err := s.paymentRepo.GetPaymentsForRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for day: %w", err)
	}
	summary, err := s.paymentRepo.SumByMethodForRange(s.db, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize payments for day: %w", err)
	}
	return &DailyPayments{Payments: payments, Summary: summary}, nil
}

func (s *paymentService) PaymentsToday() (*DailyPayments, error) {
	return s.PaymentsForDay(s.clk.Today())
}
