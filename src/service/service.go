// Package service implements the finance operations behind each route: it
// authorizes the caller, reads and writes the store, and asks the generator
// for advice text.
package service

import (
	"context"
	"time"

	"finpal-server/src/apperr"
	"finpal-server/src/genai"
	"finpal-server/src/logger"
	"finpal-server/src/metrics"
	"finpal-server/src/models"
	"finpal-server/src/quiz"
	"finpal-server/src/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	chatHistoryLimit  = 50
	chatContextLimit  = 10
	daysPerMonth      = 30
	onTrackPercentage = 80
)

// Policy selects, per operation, whether a store failure is swallowed.
type Policy struct {
	// SoftFailListSpending returns an empty list when listing entries fails.
	SoftFailListSpending bool
	// SoftFailSaveGoal returns the unsaved goal when persisting it fails.
	SoftFailSaveGoal bool
}

func DefaultPolicy() Policy {
	return Policy{SoftFailListSpending: true, SoftFailSaveGoal: true}
}

type Service struct {
	store   store.Store
	gen     genai.Generator
	catalog *quiz.Catalog
	policy  Policy

	now   func() time.Time
	newID func() string
}

func New(st store.Store, gen genai.Generator, catalog *quiz.Catalog, policy Policy) *Service {
	return &Service{
		store:   st,
		gen:     gen,
		catalog: catalog,
		policy:  policy,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// SetClock overrides the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return apperr.Store("Store unavailable", err)
	}
	return nil
}

// Questions returns the quiz catalog.
func (s *Service) Questions() []models.QuizQuestion {
	return s.catalog.Questions()
}

// authorize resolves the target user of a request. An empty target means the
// caller; anything else must match the caller's subject.
func authorize(claims models.Claims, target string) (string, error) {
	if target == "" {
		return claims.Subject, nil
	}
	if target != claims.Subject {
		return "", apperr.Authorization()
	}
	return target, nil
}

// generate calls the generator and records the outcome.
func (s *Service) generate(ctx context.Context, operation, prompt string) (string, error) {
	start := time.Now()
	text, err := s.gen.Generate(ctx, prompt)
	metrics.RecordGeneration(operation, time.Since(start), err)
	if err != nil {
		if _, ok := apperr.As(err); !ok {
			err = apperr.Generation("request failed", err)
		}
		logger.Get().Error("generation failed", zap.String("operation", operation), zap.Error(err))
		return "", err
	}
	return text, nil
}

func storeError(operation string, err error) error {
	logger.Get().Error("store call failed", zap.String("operation", operation), zap.Error(err))
	return apperr.Store("Failed to "+operation, err)
}

func softFail(operation, userID string, err error) {
	logger.Get().Warn("store failure swallowed",
		zap.String("operation", operation),
		zap.String("user_id", userID),
		zap.Error(err),
	)
	metrics.RecordSoftFail(operation)
}
