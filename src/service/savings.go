package service

import (
	"context"
	"errors"

	"finpal-server/src/apperr"
	"finpal-server/src/models"
	"finpal-server/src/store"

	"github.com/shopspring/decimal"
)

// SetSavingsGoal generates a plan for the goal and upserts it. Generation
// failures always propagate; a failed save is swallowed when the policy says so.
func (s *Service) SetSavingsGoal(ctx context.Context, claims models.Claims, req models.SavingsGoalRequest) (*models.SavingsGoal, error) {
	income, goal := decimal.Zero, decimal.Zero
	if req.MonthlyIncome != nil {
		income = *req.MonthlyIncome
	}
	if req.MonthlySavingsGoal != nil {
		goal = *req.MonthlySavingsGoal
	}

	plan, err := s.generate(ctx, "savings_plan", buildSavingsPlanPrompt(income.StringFixed(2), goal.StringFixed(2)))
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	unsaved := &models.SavingsGoal{
		UserID:             claims.Subject,
		MonthlyIncome:      income,
		MonthlySavingsGoal: goal,
		SavingsPlan:        plan,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	saved, err := s.store.UpsertSavingsGoal(ctx, unsaved)
	if err != nil {
		if !s.policy.SoftFailSaveGoal {
			return nil, storeError("save savings goal", err)
		}
		softFail("save_goal", claims.Subject, err)
		return unsaved, nil
	}
	return saved, nil
}

func (s *Service) GetSavingsGoal(ctx context.Context, claims models.Claims, userID string) (*models.SavingsGoal, error) {
	userID, err := authorize(claims, userID)
	if err != nil {
		return nil, err
	}

	goal, err := s.store.GetSavingsGoal(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("No savings goal found")
	}
	if err != nil {
		return nil, storeError("get savings goal", err)
	}
	return goal, nil
}
