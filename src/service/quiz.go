package service

import (
	"context"
	"errors"

	"finpal-server/src/apperr"
	"finpal-server/src/logger"
	"finpal-server/src/models"
	"finpal-server/src/store"

	"go.uber.org/zap"
)

// SubmitQuiz provisions the caller on first use, asks for an analysis of the
// answers and appends the response.
func (s *Service) SubmitQuiz(ctx context.Context, claims models.Claims, req models.QuizSubmitRequest) (*models.QuizResponse, error) {
	answers := make([]models.QuizAnswer, len(req.Answers))
	for i, a := range req.Answers {
		if a.Category == "" {
			a.Category = s.catalog.Category(a.QuestionID)
		}
		answers[i] = a
	}

	created, err := s.store.EnsureUser(ctx, models.User{ID: claims.Subject, Email: claims.Email, Name: claims.Name})
	if err != nil {
		return nil, storeError("create user", err)
	}
	if created {
		logger.Get().Info("user provisioned", zap.String("user_id", claims.Subject))
	}

	analysis, err := s.generate(ctx, "quiz_analysis", buildQuizPrompt(answers, s.catalog.Question))
	if err != nil {
		return nil, err
	}

	quiz := &models.QuizResponse{
		ID:        s.newID(),
		UserID:    claims.Subject,
		Answers:   answers,
		Analysis:  analysis,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreateQuizResponse(ctx, quiz); err != nil {
		return nil, storeError("save quiz response", err)
	}
	return quiz, nil
}

// GetQuizAnalysis returns the caller's latest quiz response.
func (s *Service) GetQuizAnalysis(ctx context.Context, claims models.Claims, userID string) (*models.QuizResponse, error) {
	userID, err := authorize(claims, userID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.store.LatestQuizResponse(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("No quiz analysis found")
	}
	if err != nil {
		return nil, storeError("get quiz analysis", err)
	}
	return quiz, nil
}
