package db

import (
	"context"
	"encoding/json"
	"fmt"

	"finpal-server/src/db"
	"finpal-server/src/models"
)

func (p *Postgres) CreateQuizResponse(ctx context.Context, quiz *models.QuizResponse) error {
	answers, err := json.Marshal(quiz.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	query := `
		INSERT INTO quiz_responses (id, user_id, answers, analysis)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	createdAt, err := db.QueryOne(ctx, p.ex, scanTime, query, quiz.ID, quiz.UserID, string(answers), quiz.Analysis)
	if err != nil {
		return err
	}
	quiz.CreatedAt = createdAt
	return nil
}

func (p *Postgres) LatestQuizResponse(ctx context.Context, userID string) (*models.QuizResponse, error) {
	query := `
		SELECT id, user_id, answers, analysis, created_at
		FROM quiz_responses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	q, err := db.QueryOne(ctx, p.ex, scanQuizResponse, query, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return &q, nil
}

func scanQuizResponse(row db.RowScanner) (models.QuizResponse, error) {
	var q models.QuizResponse
	var answers []byte
	if err := row.Scan(&q.ID, &q.UserID, &answers, &q.Analysis, &q.CreatedAt); err != nil {
		return q, err
	}
	if err := json.Unmarshal(answers, &q.Answers); err != nil {
		return q, fmt.Errorf("decode answers: %w", err)
	}
	return q, nil
}
