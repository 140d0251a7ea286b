package service

import (
	"context"
	"errors"
	"time"

	"finpal-server/src/models"
	"finpal-server/src/store"
)

// PostChatMessage answers the caller using their goal and recent spending as
// context, then stores the question and the reply together.
func (s *Service) PostChatMessage(ctx context.Context, claims models.Claims, req models.ChatMessageRequest) (*models.ChatMessage, error) {
	goal, err := s.store.GetSavingsGoal(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		goal, err = nil, nil
	}
	if err != nil {
		return nil, storeError("load chat context", err)
	}

	recent, err := s.store.RecentSpendingEntries(ctx, claims.Subject, chatContextLimit)
	if err != nil {
		return nil, storeError("load chat context", err)
	}

	sentAt := s.now().UTC().Truncate(time.Microsecond)
	text, err := s.generate(ctx, "chat", buildChatPrompt(req.Message, goal, recent))
	if err != nil {
		return nil, err
	}

	repliedAt := s.now().UTC().Truncate(time.Microsecond)
	if !repliedAt.After(sentAt) {
		repliedAt = sentAt.Add(time.Millisecond)
	}

	userMessage := &models.ChatMessage{
		ID:        s.newID(),
		UserID:    claims.Subject,
		Message:   req.Message,
		IsUser:    true,
		Timestamp: sentAt,
	}
	reply := &models.ChatMessage{
		ID:        s.newID(),
		UserID:    claims.Subject,
		Message:   text,
		IsUser:    false,
		Timestamp: repliedAt,
	}
	if err := s.store.AppendChatTurn(ctx, userMessage, reply); err != nil {
		return nil, storeError("save chat message", err)
	}
	return reply, nil
}

// GetChatHistory returns up to 50 messages, newest first.
func (s *Service) GetChatHistory(ctx context.Context, claims models.Claims, userID string) ([]models.ChatMessage, error) {
	userID, err := authorize(claims, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.store.ChatHistory(ctx, userID, chatHistoryLimit)
	if err != nil {
		return nil, storeError("get chat history", err)
	}
	if history == nil {
		history = []models.ChatMessage{}
	}
	return history, nil
}
