package db

import (
	"context"
	"time"

	"finpal-server/src/db"
	"finpal-server/src/models"
	"finpal-server/src/store"
)

const spendingEntryColumns = `id, user_id, TO_CHAR(entry_date, 'YYYY-MM-DD'), amount, description, category, is_necessary, created_at`

func (p *Postgres) CreateSpendingEntry(ctx context.Context, entry *models.SpendingEntry) error {
	query := `
		INSERT INTO spending_entries (id, user_id, entry_date, amount, description, category, is_necessary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	createdAt, err := db.QueryOne(ctx, p.ex, scanTime, query,
		entry.ID, entry.UserID, entry.Date, entry.Amount, entry.Description, entry.Category, entry.IsNecessary)
	if err != nil {
		return err
	}
	entry.CreatedAt = createdAt
	return nil
}

func (p *Postgres) ListSpendingEntries(ctx context.Context, userID, date string) ([]models.SpendingEntry, error) {
	if date == "" {
		query := `
			SELECT ` + spendingEntryColumns + `
			FROM spending_entries
			WHERE user_id = $1
			ORDER BY entry_date DESC, created_at DESC
		`
		return db.Query(ctx, p.ex, scanSpendingEntry, query, userID)
	}

	query := `
		SELECT ` + spendingEntryColumns + `
		FROM spending_entries
		WHERE user_id = $1 AND entry_date = $2
		ORDER BY created_at DESC
	`
	return db.Query(ctx, p.ex, scanSpendingEntry, query, userID, date)
}

func (p *Postgres) RecentSpendingEntries(ctx context.Context, userID string, limit int) ([]models.SpendingEntry, error) {
	query := `
		SELECT ` + spendingEntryColumns + `
		FROM spending_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $2
	`
	return db.Query(ctx, p.ex, scanSpendingEntry, query, userID, limit)
}

func (p *Postgres) UpdateSpendingEntry(ctx context.Context, entry *models.SpendingEntry) (*models.SpendingEntry, error) {
	query := `
		UPDATE spending_entries
		SET entry_date = $1, amount = $2, description = $3, category = $4, is_necessary = $5
		WHERE id = $6 AND user_id = $7
		RETURNING ` + spendingEntryColumns + `
	`
	e, err := db.QueryOne(ctx, p.ex, scanSpendingEntry, query,
		entry.Date, entry.Amount, entry.Description, entry.Category, entry.IsNecessary, entry.ID, entry.UserID)
	if err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (p *Postgres) DeleteSpendingEntry(ctx context.Context, userID, entryID string) error {
	query := `DELETE FROM spending_entries WHERE id = $1 AND user_id = $2`
	affected, err := p.ex.Exec(ctx, query, entryID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanSpendingEntry(row db.RowScanner) (models.SpendingEntry, error) {
	var e models.SpendingEntry
	err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Amount, &e.Description, &e.Category, &e.IsNecessary, &e.CreatedAt)
	return e, err
}

func scanTime(row db.RowScanner) (time.Time, error) {
	var t time.Time
	err := row.Scan(&t)
	return t, err
}
