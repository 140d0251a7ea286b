package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"finpal-server/src/models"
)

// Memory is a Store held in process memory. Each instance is independent;
// tests create one per case or call Reset between cases.
type Memory struct {
	mu sync.RWMutex

	users    map[string]models.User
	quizzes  []models.QuizResponse
	entries  map[string]models.SpendingEntry
	goals    map[string]models.SavingsGoal
	messages []models.ChatMessage

	failWith error

	now func() time.Time
}

func NewMemory() *Memory {
	m := &Memory{now: time.Now}
	m.Reset()
	return m
}

// Reset drops all data and clears any injected failure.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = make(map[string]models.User)
	m.quizzes = nil
	m.entries = make(map[string]models.SpendingEntry)
	m.goals = make(map[string]models.SavingsGoal)
	m.messages = nil
	m.failWith = nil
}

// FailWith makes every subsequent call return err until Reset or
// FailWith(nil).
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	m.failWith = err
	m.mu.Unlock()
}

// SetClock overrides the time source used for server-side timestamps.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// UserCount and QuizCount expose row counts for assertions.
func (m *Memory) UserCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

func (m *Memory) QuizCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.quizzes)
}

func (m *Memory) EnsureUser(ctx context.Context, user models.User) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return false, m.failWith
	}
	if _, ok := m.users[user.ID]; ok {
		return false, nil
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = m.now()
	}
	m.users[user.ID] = user
	return true, nil
}

func (m *Memory) CreateQuizResponse(ctx context.Context, quiz *models.QuizResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = m.now()
	}
	stored := *quiz
	stored.Answers = append([]models.QuizAnswer(nil), quiz.Answers...)
	m.quizzes = append(m.quizzes, stored)
	return nil
}

func (m *Memory) LatestQuizResponse(ctx context.Context, userID string) (*models.QuizResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var latest *models.QuizResponse
	for i := range m.quizzes {
		q := m.quizzes[i]
		if q.UserID != userID {
			continue
		}
		if latest == nil || !q.CreatedAt.Before(latest.CreatedAt) {
			latest = &q
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	out := *latest
	out.Answers = append([]models.QuizAnswer(nil), latest.Answers...)
	return &out, nil
}

func (m *Memory) CreateSpendingEntry(ctx context.Context, entry *models.SpendingEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = m.now()
	}
	m.entries[entry.ID] = *entry
	return nil
}

func (m *Memory) ListSpendingEntries(ctx context.Context, userID, date string) ([]models.SpendingEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []models.SpendingEntry
	for _, e := range m.entries {
		if e.UserID == userID && (date == "" || e.Date == date) {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out, nil
}

func (m *Memory) RecentSpendingEntries(ctx context.Context, userID string, limit int) ([]models.SpendingEntry, error) {
	all, err := m.ListSpendingEntries(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *Memory) UpdateSpendingEntry(ctx context.Context, entry *models.SpendingEntry) (*models.SpendingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	existing, ok := m.entries[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return nil, ErrNotFound
	}
	existing.Date = entry.Date
	existing.Amount = entry.Amount
	existing.Description = entry.Description
	existing.Category = entry.Category
	existing.IsNecessary = entry.IsNecessary
	m.entries[entry.ID] = existing
	return &existing, nil
}

func (m *Memory) DeleteSpendingEntry(ctx context.Context, userID, entryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	existing, ok := m.entries[entryID]
	if !ok || existing.UserID != userID {
		return ErrNotFound
	}
	delete(m.entries, entryID)
	return nil
}

func (m *Memory) UpsertSavingsGoal(ctx context.Context, goal *models.SavingsGoal) (*models.SavingsGoal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	now := m.now()
	stored := *goal
	stored.UpdatedAt = now
	if existing, ok := m.goals[goal.UserID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	m.goals[goal.UserID] = stored
	return &stored, nil
}

func (m *Memory) GetSavingsGoal(ctx context.Context, userID string) (*models.SavingsGoal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	goal, ok := m.goals[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &goal, nil
}

func (m *Memory) AppendChatTurn(ctx context.Context, userMessage, reply *models.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.messages = append(m.messages, *userMessage, *reply)
	return nil
}

func (m *Memory) ChatHistory(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []models.ChatMessage
	for _, msg := range m.messages {
		if msg.UserID == userID {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failWith
}

// sortEntries orders newest date first, then newest created first.
func sortEntries(entries []models.SpendingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}
