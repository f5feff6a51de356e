package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_backend/internal/clock"
	"gym_backend/internal/models"
	"gym_backend/internal/repositories"
)

// --- Custom Service Errors for Cash Register ---
var (
	ErrRegisterAlreadyClosed = errors.New("cash register already closed for this date")
	ErrClosingNotFound       = errors.New("cash register closing not found")
	ErrClosingValidation     = errors.New("cash register closing validation error")
)

// --- Cash Register DTOs ---
type CloseRegisterRequest struct {
	// Date is the local business day being closed, "2006-01-02". Empty
	// means today.
	Date     string                `json:"date"`
	Declared models.DeclaredTotals `json:"declared"`
	Notes    *string               `json:"notes"`
}

// --- CashRegisterService Interface ---
type CashRegisterService interface {
	// CloseRegister snapshots the day's per-method payment totals, compares
	// them against the cashier's declared counts and stores the immutable
	// closing. One closing per local day.
	CloseRegister(operatorID int64, req CloseRegisterRequest) (*models.CashRegisterClosing, error)
	GetClosing(date string) (*models.CashRegisterClosing, error)
	ListClosings(from, to string) ([]models.CashRegisterClosing, error)
}

// --- cashRegisterService Implementation ---
type cashRegisterService struct {
	registerRepo repositories.CashRegisterRepository
	paymentRepo  repositories.PaymentRepository
	clk          *clock.Clock
	db           *sql.DB
}

// NewCashRegisterService creates a new instance of CashRegisterService.
func NewCashRegisterService(
	rr repositories.CashRegisterRepository,
	pr repositories.PaymentRepository,
	clk *clock.Clock,
	db *sql.DB,
) CashRegisterService {
	return &cashRegisterService{
		registerRepo: rr,
		paymentRepo:  pr,
		clk:          clk,
		db:           db,
	}
}

func (s *cashRegisterService) CloseRegister(operatorID int64, req CloseRegisterRequest) (*models.CashRegisterClosing, error) {
	day := s.clk.Today()
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := s.clk.ParseDay(req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrClosingValidation)
		}
		day = parsed
	}
	if req.Declared.Cash.IsNegative() || req.Declared.Card.IsNegative() || req.Declared.Transfer.IsNegative() {
		return nil, fmt.Errorf("%w: declared totals must not be negative", ErrClosingValidation)
	}

	if _, err := s.registerRepo.GetClosingByDate(day); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrRegisterAlreadyClosed, s.clk.FormatDay(day))
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing closing: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	start, end := s.clk.DayBounds(day)
	system, err := s.paymentRepo.SumByMethodForRange(tx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to total payments for closing: %w", err)
	}

	declaredTotal := req.Declared.Cash.Add(req.Declared.Card).Add(req.Declared.Transfer)
	closing := &models.CashRegisterClosing{
		ClosingDate: day,
		OperatorID:  operatorID,

		SystemTotal:    system.Total,
		SystemCash:     system.Cash,
		SystemCard:     system.Card,
		SystemTransfer: system.Transfer,

		DeclaredCash:     req.Declared.Cash,
		DeclaredCard:     req.Declared.Card,
		DeclaredTransfer: req.Declared.Transfer,

		VarianceCash:     req.Declared.Cash.Sub(system.Cash),
		VarianceCard:     req.Declared.Card.Sub(system.Card),
		VarianceTransfer: req.Declared.Transfer.Sub(system.Transfer),
		VarianceTotal:    declaredTotal.Sub(system.Total),

		Notes: req.Notes,
	}
	if _, err := s.registerRepo.CreateClosing(tx, closing); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrRegisterAlreadyClosed, s.clk.FormatDay(day))
		}
		return nil, fmt.Errorf("failed to store closing: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit closing transaction: %w", err)
	}
	return closing, nil
}

func (s *cashRegisterService) GetClosing(date string) (*models.CashRegisterClosing, error) {
	day, err := s.clk.ParseDay(date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrClosingValidation)
	}
	closing, err := s.registerRepo.GetClosingByDate(day)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClosingNotFound
		}
		return nil, fmt.Errorf("failed to fetch closing: %w", err)
	}
	return closing, nil
}

func (s *cashRegisterService) ListClosings(from, to string) ([]models.CashRegisterClosing, error) {
	var fromDay, toDay *time.Time
	if strings.TrimSpace(from) != "" {
		parsed, err := s.clk.ParseDay(from)
		if err != nil {
			return nil, fmt.Errorf("%w: from must be in YYYY-MM-DD format", ErrClosingValidation)
		}
		fromDay = &parsed
	}
	if strings.TrimSpace(to) != "" {
		parsed, err := s.clk.ParseDay(to)
		if err != nil {
			return nil, fmt.Errorf("%w: to must be in YYYY-MM-DD format", ErrClosingValidation)
		}
		toDay = &parsed
	}
	closings, err := s.registerRepo.GetClosings(fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list closings: %w", err)
	}
	return closings, nil
}
