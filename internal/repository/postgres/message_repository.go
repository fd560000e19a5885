package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Insert(ctx context.Context, message *domain.Message) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	query := `
		INSERT INTO messages (id, match_id, sender_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		message.ID, message.MatchID, message.SenderID, message.Content,
	).Scan(&message.CreatedAt)
}

func (r *messageRepository) ListByMatch(ctx context.Context, matchID string, before *time.Time, limit int) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT id, match_id, sender_id, content, read_at, created_at
		FROM messages WHERE match_id = $1
	`
	args := []interface{}{matchID}
	if before != nil {
		query += ` AND created_at < $2`
		args = append(args, *before)
	}
	query += ` ORDER BY created_at DESC LIMIT ` + itoa(limit)

	err := r.db.SelectContext(ctx, &messages, query, args...)
	return messages, err
}

func (r *messageRepository) MarkRead(ctx context.Context, matchID, readerID string) error {
	query := `
		UPDATE messages
		SET read_at = CURRENT_TIMESTAMP
		WHERE match_id = $1 AND sender_id <> $2 AND read_at IS NULL
	`
	_, err := r.db.ExecContext(ctx, query, matchID, readerID)
	return err
}

func (r *messageRepository) UnreadCounts(ctx context.Context, userID string) ([]*domain.UnreadCount, error) {
	var counts []*domain.UnreadCount
	query := `
		SELECT m.match_id AS match_id, COUNT(*) AS count
		FROM messages m
		JOIN matches mt ON mt.id = m.match_id
		WHERE (mt.user1_id = $1 OR mt.user2_id = $1)
		  AND m.sender_id <> $1
		  AND m.read_at IS NULL
		GROUP BY m.match_id
	`
	err := r.db.SelectContext(ctx, &counts, query, userID)
	return counts, err
}

func (r *messageRepository) LastByMatch(ctx context.Context, matchID string) (*domain.Message, error) {
	var message domain.Message
	query := `
		SELECT id, match_id, sender_id, content, read_at, created_at
		FROM messages WHERE match_id = $1
		ORDER BY created_at DESC LIMIT 1
	`
	err := r.db.GetContext(ctx, &message, query, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) ListBySender(ctx context.Context, senderID string) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT id, match_id, sender_id, content, read_at, created_at
		FROM messages WHERE sender_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &messages, query, senderID)
	return messages, err
}

func (r *messageRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE sender_id = $1`, userID)
	return err
}
