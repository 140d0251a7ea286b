package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SpendingEntry struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	IsNecessary bool            `json:"isNecessary"`
	CreatedAt   time.Time       `json:"createdAt"`
}
