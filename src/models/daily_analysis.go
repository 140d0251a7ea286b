package models

import "github.com/shopspring/decimal"

// DailyAnalysis is computed per request and never stored.
type DailyAnalysis struct {
	Date             string          `json:"date"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	NecessarySpent   decimal.Decimal `json:"necessarySpent"`
	UnnecessarySpent decimal.Decimal `json:"unnecessarySpent"`
	DailyBudget      decimal.Decimal `json:"dailyBudget"`
	OnTrack          bool            `json:"onTrack"`
	Analysis         string          `json:"analysis"`
	Recommendations  []string        `json:"recommendations"`
}
