package db

import (
	"context"

	"finpal-server/src/models"
)

// EnsureUser creates the user row the first time a subject is seen. The
// conflict clause keeps concurrent first requests from racing.
func (p *Postgres) EnsureUser(ctx context.Context, user models.User) (bool, error) {
	query := `
		INSERT INTO users (id, email, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`
	inserted, err := p.ex.Exec(ctx, query, user.ID, user.Email, user.Name)
	if err != nil {
		return false, err
	}
	return inserted == 1, nil
}
