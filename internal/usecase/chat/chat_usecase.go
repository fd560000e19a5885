package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
	"github.com/rs/zerolog"
)

const defaultPageSize = 50

type UseCase struct {
	messageRepo repository.MessageRepository
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	limiter     repository.RateLimiter
	log         zerolog.Logger
}

func NewUseCase(
	messageRepo repository.MessageRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	limiter repository.RateLimiter,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		messageRepo: messageRepo,
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		limiter:     limiter,
		log:         log,
	}
}

// SendMessage delivers one message into an active match the sender
// belongs to.
func (uc *UseCase) SendMessage(ctx context.Context, matchID, senderID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrMessageEmpty
	}
	if len(content) > domain.MaxMessageLength {
		return nil, domain.ErrMessageTooLong
	}

	if _, err := uc.activeMatchFor(ctx, matchID, senderID); err != nil {
		return nil, err
	}

	if uc.limiter != nil {
		allowed, err := uc.limiter.Allow(ctx, "message:"+senderID, domain.MaxMessagesPerMinute, time.Minute)
		if err != nil {
			uc.log.Warn().Err(err).Msg("message rate limit check failed, allowing")
		} else if !allowed {
			return nil, domain.ErrRateLimited
		}
	}

	message := &domain.Message{
		MatchID:  matchID,
		SenderID: senderID,
		Content:  content,
	}
	if err := uc.messageRepo.Insert(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return message, nil
}

// GetMessages returns the match history newest-first, paginated with a
// before-cursor.
func (uc *UseCase) GetMessages(ctx context.Context, matchID, userID string, before *time.Time, limit int) ([]*domain.Message, error) {
	if _, err := uc.activeMatchFor(ctx, matchID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = defaultPageSize
	}
	messages, err := uc.messageRepo.ListByMatch(ctx, matchID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	return messages, nil
}

// MarkRead marks the other member's messages in the match as read.
func (uc *UseCase) MarkRead(ctx context.Context, matchID, userID string) error {
	if _, err := uc.activeMatchFor(ctx, matchID, userID); err != nil {
		return err
	}
	return uc.messageRepo.MarkRead(ctx, matchID, userID)
}

// ChatPreview is one row of the chat list.
type ChatPreview struct {
	MatchID     string          `json:"match_id"`
	MatchedAt   time.Time       `json:"matched_at"`
	OtherUser   *domain.Profile `json:"other_user"`
	LastMessage *domain.Message `json:"last_message"`
	UnreadCount int             `json:"unread_count"`
}

// GetChatList returns active matches with last message and unread count,
// ordered by most recent activity.
func (uc *UseCase) GetChatList(ctx context.Context, userID string) ([]*ChatPreview, error) {
	matches, err := uc.matchRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	unread, err := uc.messageRepo.UnreadCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unread counts: %w", err)
	}
	unreadByMatch := make(map[string]int, len(unread))
	for _, u := range unread {
		unreadByMatch[u.MatchID] = u.Count
	}

	chats := make([]*ChatPreview, 0, len(matches))
	for _, m := range matches {
		otherID, ok := m.OtherUserID(userID)
		if !ok {
			continue
		}
		profile, err := uc.profileRepo.GetByID(ctx, otherID)
		if err != nil {
			continue
		}
		last, err := uc.messageRepo.LastByMatch(ctx, m.ID)
		if err != nil {
			uc.log.Warn().Err(err).Str("match_id", m.ID).Msg("failed to load last message")
		}
		chats = append(chats, &ChatPreview{
			MatchID:     m.ID,
			MatchedAt:   m.MatchedAt,
			OtherUser:   profile,
			LastMessage: last,
			UnreadCount: unreadByMatch[m.ID],
		})
	}

	sort.SliceStable(chats, func(i, j int) bool {
		return lastActivity(chats[i]).After(lastActivity(chats[j]))
	})
	return chats, nil
}

func lastActivity(c *ChatPreview) time.Time {
	if c.LastMessage != nil {
		return c.LastMessage.CreatedAt
	}
	return c.MatchedAt
}

func (uc *UseCase) activeMatchFor(ctx context.Context, matchID, userID string) (*domain.Match, error) {
	m, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.HasUser(userID) {
		return nil, domain.ErrNotMatchMember
	}
	if !m.IsActive {
		return nil, domain.ErrMatchNotFound
	}
	return m, nil
}
