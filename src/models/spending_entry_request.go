package models

import "github.com/shopspring/decimal"

// SpendingEntryRequest is the body of add and update entry calls.
type SpendingEntryRequest struct {
	Date        string           `json:"date" validate:"required,datetime=2006-01-02"`
	Amount      *decimal.Decimal `json:"amount" validate:"required,gte=0,money"`
	Description string           `json:"description" validate:"required,max=500"`
	Category    string           `json:"category" validate:"required,max=100"`
	IsNecessary bool             `json:"isNecessary"`
}
