package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para registrar un gasto.
type CreateExpenseRequest struct {
	Concept string          `json:"concept"`
	Amount  decimal.Decimal `json:"amount"`
	Note    string          `json:"note"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID        int64           `json:"id"`
	Concept   string          `json:"concept"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	UserID    int64           `json:"user_id"`
	UserName  string          `json:"user_name,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
