package repository

import (
	"context"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

type MessageRepository interface {
	Insert(ctx context.Context, message *domain.Message) error
	// ListByMatch returns messages newest-first, optionally only those
	// created before the given cursor.
	ListByMatch(ctx context.Context, matchID string, before *time.Time, limit int) ([]*domain.Message, error)
	// MarkRead marks every unread message in the match not sent by
	// readerID as read.
	MarkRead(ctx context.Context, matchID, readerID string) error
	UnreadCounts(ctx context.Context, userID string) ([]*domain.UnreadCount, error)
	LastByMatch(ctx context.Context, matchID string) (*domain.Message, error)
	ListBySender(ctx context.Context, senderID string) ([]*domain.Message, error)
	DeleteByUser(ctx context.Context, userID string) error
}
