package models

import "github.com/shopspring/decimal"

type SavingsGoalRequest struct {
	MonthlyIncome      *decimal.Decimal `json:"monthlyIncome" validate:"required,gte=0,money"`
	MonthlySavingsGoal *decimal.Decimal `json:"monthlySavingsGoal" validate:"required,gte=0,money"`
}
