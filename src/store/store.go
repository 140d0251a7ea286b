// Package store defines the persistence contract used by the domain
// operations. The Postgres implementation lives in src/db/sql; Memory is the
// in-process implementation used for local runs and tests.
package store

import (
	"context"
	"errors"

	"finpal-server/src/models"
)

// ErrNotFound is returned when a row is absent or not owned by the caller.
var ErrNotFound = errors.New("not found")

type Store interface {
	// EnsureUser inserts the user if no row with that id exists and reports
	// whether it did.
	EnsureUser(ctx context.Context, user models.User) (bool, error)

	CreateQuizResponse(ctx context.Context, quiz *models.QuizResponse) error
	LatestQuizResponse(ctx context.Context, userID string) (*models.QuizResponse, error)

	CreateSpendingEntry(ctx context.Context, entry *models.SpendingEntry) error
	// ListSpendingEntries filters by date when date is non-empty.
	ListSpendingEntries(ctx context.Context, userID, date string) ([]models.SpendingEntry, error)
	RecentSpendingEntries(ctx context.Context, userID string, limit int) ([]models.SpendingEntry, error)
	UpdateSpendingEntry(ctx context.Context, entry *models.SpendingEntry) (*models.SpendingEntry, error)
	DeleteSpendingEntry(ctx context.Context, userID, entryID string) error

	UpsertSavingsGoal(ctx context.Context, goal *models.SavingsGoal) (*models.SavingsGoal, error)
	GetSavingsGoal(ctx context.Context, userID string) (*models.SavingsGoal, error)

	// AppendChatTurn stores a user message and the advisor reply together.
	AppendChatTurn(ctx context.Context, userMessage, reply *models.ChatMessage) error
	ChatHistory(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error)

	Ping(ctx context.Context) error
}
