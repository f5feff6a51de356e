package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gym_backend/internal/models"
	"gym_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Plan ---
var (
	ErrPlanNotFound   = errors.New("membership plan not found")
	ErrPlanValidation = errors.New("membership plan validation error")
	ErrPlanInUse      = errors.New("membership plan is referenced by existing periods")
)

// --- Plan DTOs ---
type CreatePlanRequest struct {
	Name         string           `json:"name" binding:"required"`
	Description  *string          `json:"description"`
	DurationDays int              `json:"duration_days" binding:"required"`
	Price        *decimal.Decimal `json:"price" binding:"required"`
}

type UpdatePlanRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	DurationDays *int             `json:"duration_days"`
	Price        *decimal.Decimal `json:"price"`
}

// --- PlanService Interface ---
type PlanService interface {
	CreatePlan(req CreatePlanRequest) (*models.MembershipPlan, error)
	GetPlanByID(planID int64) (*models.MembershipPlan, error)
	GetPlans() ([]models.MembershipPlan, error)
	UpdatePlan(planID int64, req UpdatePlanRequest) (*models.MembershipPlan, error)
	DeletePlan(planID int64) error
}

// --- planService Implementation ---
type planService struct {
	planRepo repositories.PlanRepository
	db       *sql.DB
}

// NewPlanService creates a new instance of PlanService.
func NewPlanService(pr repositories.PlanRepository, db *sql.DB) PlanService {
	return &planService{planRepo: pr, db: db}
}

func (s *planService) CreatePlan(req CreatePlanRequest) (*models.MembershipPlan, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrPlanValidation)
	}
	if req.DurationDays < 1 {
		return nil, fmt.Errorf("%w: duration_days must be at least 1", ErrPlanValidation)
	}
	if req.Price == nil || !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrPlanValidation)
	}

	plan := &models.MembershipPlan{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		DurationDays: req.DurationDays,
		Price:        *req.Price,
	}
	if _, err := s.planRepo.CreatePlan(s.db, plan); err != nil {
		return nil, fmt.Errorf("failed to create membership plan: %w", err)
	}
	return plan, nil
}

func (s *planService) GetPlanByID(planID int64) (*models.MembershipPlan, error) {
	plan, err := s.planRepo.GetPlanByID(planID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get membership plan: %w", err)
	}
	return plan, nil
}

func (s *planService) GetPlans() ([]models.MembershipPlan, error) {
	plans, err := s.planRepo.GetPlans()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership plans: %w", err)
	}
	return plans, nil
}

// UpdatePlan edits the catalog entry only; periods already issued keep
// their original dates and the payment amounts already recorded.
func (s *planService) UpdatePlan(planID int64, req UpdatePlanRequest) (*models.MembershipPlan, error) {
	plan, err := s.planRepo.GetPlanByID(planID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to find membership plan for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrPlanValidation)
		}
		plan.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		plan.Description = req.Description
	}
	if req.DurationDays != nil {
		if *req.DurationDays < 1 {
			return nil, fmt.Errorf("%w: duration_days must be at least 1", ErrPlanValidation)
		}
		plan.DurationDays = *req.DurationDays
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price must be positive", ErrPlanValidation)
		}
		plan.Price = *req.Price
	}

	if err := s.planRepo.UpdatePlan(s.db, plan); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to update membership plan: %w", err)
	}
	return plan, nil
}

func (s *planService) DeletePlan(planID int64) error {
	if err := s.planRepo.DeletePlan(s.db, planID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPlanNotFound
		}
		if strings.Contains(err.Error(), "referenced by membership periods") {
			return fmt.Errorf("%w: %v", ErrPlanInUse, err)
		}
		return fmt.Errorf("failed to delete membership plan: %w", err)
	}
	return nil
}
