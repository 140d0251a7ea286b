package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SavingsGoal struct {
	UserID             string          `json:"userId"`
	MonthlyIncome      decimal.Decimal `json:"monthlyIncome"`
	MonthlySavingsGoal decimal.Decimal `json:"monthlySavingsGoal"`
	SavingsPlan        string          `json:"savingsPlan"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}
