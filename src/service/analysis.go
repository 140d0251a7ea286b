package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"finpal-server/src/apperr"
	"finpal-server/src/models"
	"finpal-server/src/store"
	"finpal-server/src/util"

	"github.com/shopspring/decimal"
)

var (
	days           = decimal.NewFromInt(daysPerMonth)
	onTrackPortion = decimal.New(onTrackPercentage, -2)
)

// GetDailyAnalysis totals one day of spending against the savings goal and
// asks for a short commentary. date defaults to today (UTC).
func (s *Service) GetDailyAnalysis(ctx context.Context, claims models.Claims, userID, date string) (*models.DailyAnalysis, error) {
	userID, err := authorize(claims, userID)
	if err != nil {
		return nil, err
	}
	if date == "" {
		date = s.now().UTC().Format("2006-01-02")
	} else if !util.ValidDate(date) {
		return nil, apperr.Validation("date must be a date in YYYY-MM-DD format", nil)
	}

	entries, err := s.store.ListSpendingEntries(ctx, userID, date)
	if err != nil {
		return nil, storeError("get spending entries", err)
	}

	goal, err := s.store.GetSavingsGoal(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		goal, err = nil, nil
	}
	if err != nil {
		return nil, storeError("get savings goal", err)
	}

	analysis := computeDailyAnalysis(date, entries, goal)

	text, err := s.generate(ctx, "daily_analysis", buildDailyAnalysisPrompt(analysis, entries))
	if err != nil {
		return nil, err
	}
	analysis.Analysis = text
	analysis.Recommendations = recommendations(analysis, entries, goal)
	return analysis, nil
}

// computeDailyAnalysis applies the budget rule:
//
//	dailyBudget = (monthlyIncome - monthlySavingsGoal) / 30
//	onTrack     = totalSpent <= dailyBudget * 0.8
//
// Without a goal the daily budget is zero.
func computeDailyAnalysis(date string, entries []models.SpendingEntry, goal *models.SavingsGoal) *models.DailyAnalysis {
	total, necessary, unnecessary := decimal.Zero, decimal.Zero, decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
		if e.IsNecessary {
			necessary = necessary.Add(e.Amount)
		} else {
			unnecessary = unnecessary.Add(e.Amount)
		}
	}

	budget := dailyBudget(goal)
	return &models.DailyAnalysis{
		Date:             date,
		TotalSpent:       total,
		NecessarySpent:   necessary,
		UnnecessarySpent: unnecessary,
		DailyBudget:      budget.Round(2),
		OnTrack:          total.LessThanOrEqual(budget.Mul(onTrackPortion)),
		Recommendations:  []string{},
	}
}

// dailyBudget is the unrounded daily allowance; zero without a goal.
func dailyBudget(goal *models.SavingsGoal) decimal.Decimal {
	if goal == nil {
		return decimal.Zero
	}
	return goal.MonthlyIncome.Sub(goal.MonthlySavingsGoal).Div(days)
}

func recommendations(a *models.DailyAnalysis, entries []models.SpendingEntry, goal *models.SavingsGoal) []string {
	var out []string

	if goal == nil {
		out = append(out, "Set a savings goal so your spending can be measured against a daily budget.")
	} else if !a.OnTrack {
		// Compared against the same unrounded target as OnTrack; a partial
		// cent over is still reported as one.
		over := a.TotalSpent.Sub(dailyBudget(goal).Mul(onTrackPortion)).RoundUp(2)
		out = append(out, fmt.Sprintf("You are %s over today's target. Try a no-spend day tomorrow.", over.StringFixed(2)))
	} else {
		out = append(out, "You are on track today. Move anything left under your budget into savings.")
	}

	if a.TotalSpent.IsPositive() && a.UnnecessarySpent.GreaterThan(a.NecessarySpent) {
		out = append(out, "More than half of today's spending was non-essential. Wait 24 hours before the next optional purchase.")
	}

	if category, amount := topDiscretionaryCategory(entries); category != "" {
		out = append(out, fmt.Sprintf("Your biggest non-essential category today was %s (%s). Look for a cheaper alternative.", category, amount.StringFixed(2)))
	}

	if len(entries) == 0 {
		out = append(out, "No spending logged for this day. Record every purchase to keep the analysis accurate.")
	}
	return out
}

func topDiscretionaryCategory(entries []models.SpendingEntry) (string, decimal.Decimal) {
	totals := map[string]decimal.Decimal{}
	for _, e := range entries {
		if !e.IsNecessary && e.Amount.IsPositive() {
			totals[e.Category] = totals[e.Category].Add(e.Amount)
		}
	}
	if len(totals) == 0 {
		return "", decimal.Zero
	}

	categories := make([]string, 0, len(totals))
	for c := range totals {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if !totals[categories[i]].Equal(totals[categories[j]]) {
			return totals[categories[i]].GreaterThan(totals[categories[j]])
		}
		return categories[i] < categories[j]
	})
	return categories[0], totals[categories[0]]
}
