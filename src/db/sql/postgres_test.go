package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"finpal-server/src/db"
	"finpal-server/src/models"
	"finpal-server/src/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stamp = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockStore(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		conn.Close()
	})
	return NewPostgres(db.NewExecutor(conn)), mock
}

var entryColumns = []string{"id", "user_id", "entry_date", "amount", "description", "category", "is_necessary", "created_at"}

func TestEnsureUserReportsInsert(t *testing.T) {
	p, mock := newMockStore(t)
	user := models.User{ID: "sub-1", Email: "a@example.com", Name: "Abby"}

	mock.ExpectExec(`INSERT INTO users .* ON CONFLICT \(id\) DO NOTHING`).
		WithArgs("sub-1", "a@example.com", "Abby").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("sub-1", "a@example.com", "Abby").
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := p.EnsureUser(context.Background(), user)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = p.EnsureUser(context.Background(), user)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestCreateQuizResponseEncodesAnswers(t *testing.T) {
	p, mock := newMockStore(t)
	quiz := &models.QuizResponse{
		ID:       "q1",
		UserID:   "sub-1",
		Answers:  []models.QuizAnswer{{QuestionID: "impulse", Answer: "often", Category: "habits"}},
		Analysis: "You shop on impulse.",
	}

	mock.ExpectQuery(`INSERT INTO quiz_responses`).
		WithArgs("q1", "sub-1", `[{"questionId":"impulse","answer":"often","category":"habits"}]`, "You shop on impulse.").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(stamp))

	require.NoError(t, p.CreateQuizResponse(context.Background(), quiz))
	assert.Equal(t, stamp, quiz.CreatedAt)
}

func TestLatestQuizResponse(t *testing.T) {
	p, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, user_id, answers, analysis, created_at\s+FROM quiz_responses\s+WHERE user_id = \$1\s+ORDER BY created_at DESC\s+LIMIT 1`).
		WithArgs("sub-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "answers", "analysis", "created_at"}).
			AddRow("q2", "sub-1", []byte(`[{"questionId":"budget","answer":"no","category":"planning"}]`), "Plan more.", stamp))

	q, err := p.LatestQuizResponse(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Equal(t, "q2", q.ID)
	require.Len(t, q.Answers, 1)
	assert.Equal(t, "planning", q.Answers[0].Category)
}

func TestLatestQuizResponseNotFound(t *testing.T) {
	p, mock := newMockStore(t)
	mock.ExpectQuery(`FROM quiz_responses`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "answers", "analysis", "created_at"}))

	_, err := p.LatestQuizResponse(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateSpendingEntry(t *testing.T) {
	p, mock := newMockStore(t)
	entry := &models.SpendingEntry{
		ID:          "e1",
		UserID:      "sub-1",
		Date:        "2025-03-01",
		Amount:      decimal.RequireFromString("12.50"),
		Description: "lunch",
		Category:    "food",
		IsNecessary: true,
	}

	mock.ExpectQuery(`INSERT INTO spending_entries`).
		WithArgs("e1", "sub-1", "2025-03-01", sqlmock.AnyArg(), "lunch", "food", true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(stamp))

	require.NoError(t, p.CreateSpendingEntry(context.Background(), entry))
	assert.Equal(t, stamp, entry.CreatedAt)
}

func TestListSpendingEntriesWithDate(t *testing.T) {
	p, mock := newMockStore(t)

	mock.ExpectQuery(`TO_CHAR\(entry_date, 'YYYY-MM-DD'\).*WHERE user_id = \$1 AND entry_date = \$2`).
		WithArgs("sub-1", "2025-03-01").
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow("e2", "sub-1", "2025-03-01", "40.00", "groceries", "food", true, stamp.Add(time.Hour)).
			AddRow("e1", "sub-1", "2025-03-01", "15.25", "movie", "fun", false, stamp))

	entries, err := p.ListSpendingEntries(context.Background(), "sub-1", "2025-03-01")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e2", entries[0].ID)
	assert.True(t, entries[1].Amount.Equal(decimal.RequireFromString("15.25")))
	assert.False(t, entries[1].IsNecessary)
}

func TestListSpendingEntriesWithoutDate(t *testing.T) {
	p, mock := newMockStore(t)

	mock.ExpectQuery(`WHERE user_id = \$1\s+ORDER BY entry_date DESC, created_at DESC`).
		WithArgs("sub-1").
		WillReturnRows(sqlmock.NewRows(entryColumns))

	entries, err := p.ListSpendingEntries(context.Background(), "sub-1", "")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecentSpendingEntriesLimit(t *testing.T) {
	p, mock := newMockStore(t)

	mock.ExpectQuery(`LIMIT \$2`).
		WithArgs("sub-1", 10).
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow("e1", "sub-1", "2025-03-01", "5", "bus", "transport", true, stamp))

	entries, err := p.RecentSpendingEntries(context.Background(), "sub-1", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUpdateSpendingEntryOwnership(t *testing.T) {
	p, mock := newMockStore(t)
	entry := &models.SpendingEntry{ID: "e1", UserID: "sub-2", Date: "2025-03-02", Amount: decimal.NewFromInt(3), Description: "tea", Category: "food"}

	mock.ExpectQuery(`UPDATE spending_entries\s+SET .*\s+WHERE id = \$6 AND user_id = \$7`).
		WithArgs("2025-03-02", sqlmock.AnyArg(), "tea", "food", false, "e1", "sub-2").
		WillReturnRows(sqlmock.NewRows(entryColumns))

	_, err := p.UpdateSpendingEntry(context.Background(), entry)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateSpendingEntry(t *testing.T) {
	p, mock := newMockStore(t)
	entry := &models.SpendingEntry{ID: "e1", UserID: "sub-1", Date: "2025-03-02", Amount: decimal.NewFromInt(3), Description: "tea", Category: "food"}

	mock.ExpectQuery(`UPDATE spending_entries`).
		WithArgs("2025-03-02", sqlmock.AnyArg(), "tea", "food", false, "e1", "sub-1").
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow("e1", "sub-1", "2025-03-02", "3.00", "tea", "food", false, stamp))

	updated, err := p.UpdateSpendingEntry(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-02", updated.Date)
	assert.Equal(t, stamp, updated.CreatedAt)
}

func TestDeleteSpendingEntry(t *testing.T) {
	p, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM spending_entries WHERE id = \$1 AND user_id = \$2`).
		WithArgs("e1", "sub-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM spending_entries`).
		WithArgs("e1", "sub-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, p.DeleteSpendingEntry(context.Background(), "sub-1", "e1"))
	assert.ErrorIs(t, p.DeleteSpendingEntry(context.Background(), "sub-2", "e1"), store.ErrNotFound)
}

func TestUpsertSavingsGoal(t *testing.T) {
	p, mock := newMockStore(t)
	goal := &models.SavingsGoal{
		UserID:             "sub-1",
		MonthlyIncome:      decimal.NewFromInt(3000),
		MonthlySavingsGoal: decimal.NewFromInt(900),
		SavingsPlan:        "Cut takeout.",
	}

	mock.ExpectQuery(`INSERT INTO savings_goals .* ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs("sub-1", sqlmock.AnyArg(), sqlmock.AnyArg(), "Cut takeout.").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "monthly_income", "monthly_savings_goal", "savings_plan", "created_at", "updated_at"}).
			AddRow("sub-1", "3000.00", "900.00", "Cut takeout.", stamp, stamp.Add(time.Hour)))

	saved, err := p.UpsertSavingsGoal(context.Background(), goal)
	require.NoError(t, err)
	assert.True(t, saved.MonthlyIncome.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, stamp, saved.CreatedAt)
}

func TestGetSavingsGoalNotFound(t *testing.T) {
	p, mock := newMockStore(t)
	mock.ExpectQuery(`FROM savings_goals WHERE user_id = \$1`).
		WithArgs("sub-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "monthly_income", "monthly_savings_goal", "savings_plan", "created_at", "updated_at"}))

	_, err := p.GetSavingsGoal(context.Background(), "sub-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAppendChatTurnSingleStatement(t *testing.T) {
	p, mock := newMockStore(t)
	userMsg := &models.ChatMessage{ID: "m1", UserID: "sub-1", Message: "Can I afford it?", IsUser: true, Timestamp: stamp}
	reply := &models.ChatMessage{ID: "m2", UserID: "sub-1", Message: "Probably.", Timestamp: stamp.Add(time.Millisecond)}

	mock.ExpectExec(`INSERT INTO chat_messages .* VALUES \(\$1, \$2, \$3, \$4, \$5\), \(\$6, \$7, \$8, \$9, \$10\)`).
		WithArgs("m1", "sub-1", "Can I afford it?", true, stamp, "m2", "sub-1", "Probably.", false, stamp.Add(time.Millisecond)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	assert.NoError(t, p.AppendChatTurn(context.Background(), userMsg, reply))
}

func TestChatHistory(t *testing.T) {
	p, mock := newMockStore(t)

	mock.ExpectQuery(`FROM chat_messages\s+WHERE user_id = \$1\s+ORDER BY timestamp DESC\s+LIMIT \$2`).
		WithArgs("sub-1", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "message", "is_user", "timestamp"}).
			AddRow("m2", "sub-1", "Probably.", false, stamp.Add(time.Millisecond)).
			AddRow("m1", "sub-1", "Can I afford it?", true, stamp))

	history, err := p.ChatHistory(context.Background(), "sub-1", 50)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.False(t, history[0].IsUser)
	assert.True(t, history[1].IsUser)
}

func TestStoreErrorsPropagate(t *testing.T) {
	p, mock := newMockStore(t)
	mock.ExpectQuery(`FROM chat_messages`).WillReturnError(errors.New("connection refused"))

	_, err := p.ChatHistory(context.Background(), "sub-1", 50)
	assert.EqualError(t, err, "connection refused")
}
