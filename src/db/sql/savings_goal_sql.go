package db

import (
	"context"

	"finpal-server/src/db"
	"finpal-server/src/models"
)

// UpsertSavingsGoal keeps one goal per user; created_at survives updates.
func (p *Postgres) UpsertSavingsGoal(ctx context.Context, goal *models.SavingsGoal) (*models.SavingsGoal, error) {
	query := `
		INSERT INTO savings_goals (user_id, monthly_income, monthly_savings_goal, savings_plan)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET monthly_income = EXCLUDED.monthly_income,
			monthly_savings_goal = EXCLUDED.monthly_savings_goal,
			savings_plan = EXCLUDED.savings_plan,
			updated_at = NOW()
		RETURNING user_id, monthly_income, monthly_savings_goal, savings_plan, created_at, updated_at
	`
	g, err := db.QueryOne(ctx, p.ex, scanSavingsGoal, query,
		goal.UserID, goal.MonthlyIncome, goal.MonthlySavingsGoal, goal.SavingsPlan)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (p *Postgres) GetSavingsGoal(ctx context.Context, userID string) (*models.SavingsGoal, error) {
	query := `
		SELECT user_id, monthly_income, monthly_savings_goal, savings_plan, created_at, updated_at
		FROM savings_goals WHERE user_id = $1
	`
	g, err := db.QueryOne(ctx, p.ex, scanSavingsGoal, query, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func scanSavingsGoal(row db.RowScanner) (models.SavingsGoal, error) {
	var g models.SavingsGoal
	err := row.Scan(&g.UserID, &g.MonthlyIncome, &g.MonthlySavingsGoal, &g.SavingsPlan, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}
