package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense es un gasto operativo (no afecta inventario).
type Expense struct {
	ID        int64
	Concept   string
	Amount    decimal.Decimal
	Note      string
	UserID    int64
	UserName  string
	CreatedAt time.Time
}
