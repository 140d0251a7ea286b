package db

import (
	"context"

	"finpal-server/src/db"
	"finpal-server/src/models"
)

// AppendChatTurn writes both sides of a turn in one statement so a history
// never shows a question without its reply.
func (p *Postgres) AppendChatTurn(ctx context.Context, userMessage, reply *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, user_id, message, is_user, timestamp)
		VALUES ($1, $2, $3, $4, $5), ($6, $7, $8, $9, $10)
	`
	_, err := p.ex.Exec(ctx, query,
		userMessage.ID, userMessage.UserID, userMessage.Message, userMessage.IsUser, userMessage.Timestamp,
		reply.ID, reply.UserID, reply.Message, reply.IsUser, reply.Timestamp,
	)
	return err
}

func (p *Postgres) ChatHistory(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	query := `
		SELECT id, user_id, message, is_user, timestamp
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`
	return db.Query(ctx, p.ex, scanChatMessage, query, userID, limit)
}

func scanChatMessage(row db.RowScanner) (models.ChatMessage, error) {
	var m models.ChatMessage
	err := row.Scan(&m.ID, &m.UserID, &m.Message, &m.IsUser, &m.Timestamp)
	return m, err
}
