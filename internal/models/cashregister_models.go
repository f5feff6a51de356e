package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeclaredTotals is the cashier's counted amounts per method at closing time.
type DeclaredTotals struct {
	Cash     decimal.Decimal `json:"cash"`
	Card     decimal.Decimal `json:"card"`
	Transfer decimal.Decimal `json:"transfer"`
}

// CashRegisterClosing is the immutable end-of-day reconciliation snapshot:
// system totals at closing time, the cashier's declared totals, and the
// variances (declared minus system). Later payments never alter it.
type CashRegisterClosing struct {
	ID          int64     `json:"id" db:"id"`
	ClosingDate time.Time `json:"closing_date" db:"closing_date"`
	OperatorID  int64     `json:"operator_id" db:"operator_id"`

	SystemTotal    decimal.Decimal `json:"system_total" db:"system_total"`
	SystemCash     decimal.Decimal `json:"system_cash" db:"system_cash"`
	SystemCard     decimal.Decimal `json:"system_card" db:"system_card"`
	SystemTransfer decimal.Decimal `json:"system_transfer" db:"system_transfer"`

	DeclaredCash     decimal.Decimal `json:"declared_cash" db:"declared_cash"`
	DeclaredCard     decimal.Decimal `json:"declared_card" db:"declared_card"`
	DeclaredTransfer decimal.Decimal `json:"declared_transfer" db:"declared_transfer"`

	VarianceCash     decimal.Decimal `json:"variance_cash" db:"variance_cash"`
	VarianceCard     decimal.Decimal `json:"variance_card" db:"variance_card"`
	VarianceTransfer decimal.Decimal `json:"variance_transfer" db:"variance_transfer"`
	VarianceTotal    decimal.Decimal `json:"variance_total" db:"variance_total"`

	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
