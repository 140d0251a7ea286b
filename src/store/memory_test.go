package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"finpal-server/src/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func entry(id, user, date string) *models.SpendingEntry {
	return &models.SpendingEntry{
		ID:          id,
		UserID:      user,
		Date:        date,
		Amount:      decimal.NewFromInt(10),
		Description: "coffee",
		Category:    "food",
	}
}

func TestEnsureUserInsertsOnce(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, err := m.EnsureUser(ctx, models.User{ID: "u1", Email: "a@example.com"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = m.EnsureUser(ctx, models.User{ID: "u1", Email: "other@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, m.UserCount())
}

func TestLatestQuizResponse(t *testing.T) {
	m := NewMemory()
	m.SetClock(fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	_, err := m.LatestQuizResponse(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.CreateQuizResponse(ctx, &models.QuizResponse{ID: "q1", UserID: "u1", Analysis: "first"}))
	require.NoError(t, m.CreateQuizResponse(ctx, &models.QuizResponse{ID: "q2", UserID: "u1", Analysis: "second"}))
	require.NoError(t, m.CreateQuizResponse(ctx, &models.QuizResponse{ID: "q3", UserID: "u2", Analysis: "other"}))

	latest, err := m.LatestQuizResponse(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "q2", latest.ID)
	assert.Equal(t, 3, m.QuizCount())
}

func TestListSpendingEntriesFiltersAndOrders(t *testing.T) {
	m := NewMemory()
	m.SetClock(fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	require.NoError(t, m.CreateSpendingEntry(ctx, entry("e1", "u1", "2025-01-01")))
	require.NoError(t, m.CreateSpendingEntry(ctx, entry("e2", "u1", "2025-01-02")))
	require.NoError(t, m.CreateSpendingEntry(ctx, entry("e3", "u1", "2025-01-02")))
	require.NoError(t, m.CreateSpendingEntry(ctx, entry("e4", "u2", "2025-01-02")))

	all, err := m.ListSpendingEntries(ctx, "u1", "")
	require.NoError(t, err)
	ids := make([]string, 0, len(all))
	for _, e := range all {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"e3", "e2", "e1"}, ids)

	day, err := m.ListSpendingEntries(ctx, "u1", "2025-01-01")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "e1", day[0].ID)

	recent, err := m.RecentSpendingEntries(ctx, "u1", 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestUpdateAndDeleteRequireOwnership(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.CreateSpendingEntry(ctx, entry("e1", "u1", "2025-01-01")))

	foreign := entry("e1", "u2", "2025-02-01")
	_, err := m.UpdateSpendingEntry(ctx, foreign)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.DeleteSpendingEntry(ctx, "u2", "e1"), ErrNotFound)
	assert.ErrorIs(t, m.DeleteSpendingEntry(ctx, "u1", "missing"), ErrNotFound)

	update := entry("e1", "u1", "2025-02-01")
	update.Amount = decimal.RequireFromString("12.50")
	update.IsNecessary = true
	updated, err := m.UpdateSpendingEntry(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", updated.Date)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, updated.IsNecessary)

	require.NoError(t, m.DeleteSpendingEntry(ctx, "u1", "e1"))
	left, err := m.ListSpendingEntries(ctx, "u1", "")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestUpsertSavingsGoalKeepsCreatedAt(t *testing.T) {
	m := NewMemory()
	m.SetClock(fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	_, err := m.GetSavingsGoal(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := m.UpsertSavingsGoal(ctx, &models.SavingsGoal{
		UserID:             "u1",
		MonthlyIncome:      decimal.NewFromInt(3000),
		MonthlySavingsGoal: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	second, err := m.UpsertSavingsGoal(ctx, &models.SavingsGoal{
		UserID:             "u1",
		MonthlyIncome:      decimal.NewFromInt(4000),
		MonthlySavingsGoal: decimal.NewFromInt(900),
	})
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	got, err := m.GetSavingsGoal(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, got.MonthlyIncome.Equal(decimal.NewFromInt(4000)))
}

func TestChatHistoryNewestFirstAndLimited(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 30; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, m.AppendChatTurn(ctx,
			&models.ChatMessage{ID: fmt.Sprintf("m%d", i), UserID: "u1", Message: "hi", IsUser: true, Timestamp: at},
			&models.ChatMessage{ID: fmt.Sprintf("r%d", i), UserID: "u1", Message: "hello", Timestamp: at.Add(time.Millisecond)},
		))
	}
	require.NoError(t, m.AppendChatTurn(ctx,
		&models.ChatMessage{ID: "x", UserID: "u2", IsUser: true, Timestamp: base},
		&models.ChatMessage{ID: "y", UserID: "u2", Timestamp: base},
	))

	history, err := m.ChatHistory(ctx, "u1", 50)
	require.NoError(t, err)
	require.Len(t, history, 50)
	assert.Equal(t, "r29", history[0].ID)
	assert.Equal(t, "m29", history[1].ID)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Timestamp.After(history[i-1].Timestamp))
	}
}

func TestFailWith(t *testing.T) {
	m := NewMemory()
	boom := errors.New("connection refused")
	m.FailWith(boom)

	_, err := m.EnsureUser(context.Background(), models.User{ID: "u1"})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, m.Ping(context.Background()), boom)

	m.Reset()
	assert.NoError(t, m.Ping(context.Background()))
}
