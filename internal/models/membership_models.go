package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MembershipPlan is a purchasable offering (name, whole-day duration, price).
// Administrative edits to a plan never retroactively affect issued periods.
type MembershipPlan struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Description  *string         `json:"description,omitempty" db:"description"`
	DurationDays int             `json:"duration_days" db:"duration_days"`
	Price        decimal.Decimal `json:"price" db:"price"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// Membership period statuses. The stored status is a cached hint only:
// a period can still read "active" past its end date, so callers must
// always recompute effective activity against today's date.
const (
	PeriodStatusActive  = "active"
	PeriodStatusExpired = "expired"
)

// MembershipPeriod is one purchased or renewed span for a client.
type MembershipPeriod struct {
	ID        int64     `json:"id" db:"id"`
	ClientID  int64     `json:"client_id" db:"client_id"`
	PlanID    int64     `json:"plan_id" db:"plan_id"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Joined plan fields for display.
	PlanName  string          `json:"plan_name,omitempty"`
	PlanPrice decimal.Decimal `json:"plan_price,omitempty"`
}

// Membership summary states surfaced to the front-end.
const (
	MembershipStateActive  = "active"
	MembershipStateExpired = "expired"
	MembershipStateNone    = "none"
)

// MembershipSummary is the client-facing view of the latest period.
type MembershipSummary struct {
	State         string          `json:"state"`
	PlanName      string          `json:"plan_name,omitempty"`
	PlanPrice     decimal.Decimal `json:"plan_price,omitempty"`
	StartDate     *string         `json:"start_date,omitempty"`
	EndDate       *string         `json:"end_date,omitempty"`
	DaysRemaining *int            `json:"days_remaining,omitempty"`
}

// ExpiringMembership is one row of the upcoming-expirations report.
type ExpiringMembership struct {
	PeriodID      int64     `json:"period_id"`
	ClientID      int64     `json:"client_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	NationalID    string    `json:"national_id"`
	PlanName      string    `json:"plan_name"`
	EndDate       time.Time `json:"end_date"`
	DaysRemaining int       `json:"days_remaining"`
}
