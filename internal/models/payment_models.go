package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted by the register. The column is an open string,
// but reconciliation only totals these three.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// IsValidPaymentMethod reports whether m is one of the accepted methods.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

// Payment is an immutable monetary transaction, normally created together
// with the membership period it paid for.
type Payment struct {
	ID       int64           `json:"id" db:"id"`
	ClientID int64           `json:"client_id" db:"client_id"`
	PeriodID *int64          `json:"period_id,omitempty" db:"period_id"`
	Amount   decimal.Decimal `json:"amount" db:"amount"`
	Method   string          `json:"method" db:"method"`
	PaidAt   time.Time       `json:"paid_at" db:"paid_at"`

	// Joined client fields for the daily list.
	ClientFirstName  string `json:"client_first_name,omitempty"`
	ClientLastName   string `json:"client_last_name,omitempty"`
	ClientNationalID string `json:"client_national_id,omitempty"`
}

// DailyPaymentsSummary holds system-computed totals for one local day.
type DailyPaymentsSummary struct {
	Total    decimal.Decimal `json:"total"`
	Cash     decimal.Decimal `json:"cash"`
	Card     decimal.Decimal `json:"card"`
	Transfer decimal.Decimal `json:"transfer"`
}
