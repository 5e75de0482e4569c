package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"advocatehub/internal/model"
	"advocatehub/internal/repository"
)

var (
	ErrEmptyBody      = errors.New("message body is empty")
	ErrSelfMessage    = errors.New("cannot message yourself")
	ErrRecipientGone  = errors.New("recipient not found")
	ErrSenderRequired = errors.New("sender is required")
)

const (
	inboxLimit  = 50
	maxPageSize = 100
)

// MessageListResult is a page of messages.
type MessageListResult struct {
	Items []model.Message `json:"data"`
	Total int             `json:"total"`
}

// MessageService covers direct messaging and the advocate chat inbox.
type MessageService interface {
	Send(ctx context.Context, senderID, recipientID, body string) (*model.Message, error)
	Conversation(ctx context.Context, userID, peerID string, limit, offset int) (*MessageListResult, error)
	// Inbox returns the latest message of each of userID's conversations.
	Inbox(ctx context.Context, userID string) ([]model.Message, error)
}

type messageService struct {
	users    repository.UserRepository
	messages repository.MessageRepository
}

// NewMessageService constructs a MessageService.
func NewMessageService(users repository.UserRepository, messages repository.MessageRepository) MessageService {
	return &messageService{users: users, messages: messages}
}

func (s *messageService) Send(ctx context.Context, senderID, recipientID, body string) (*model.Message, error) {
	if senderID == "" {
		return nil, ErrSenderRequired
	}
	if recipientID == "" {
		return nil, ErrIDRequired
	}
	if senderID == recipientID {
		return nil, ErrSelfMessage
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}
	if _, err := s.users.FindByID(ctx, recipientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecipientGone
		}
		return nil, fmt.Errorf("find recipient: %w", err)
	}

	return s.messages.Create(ctx, &model.Message{
		ID:          uuid.New().String(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	})
}

func (s *messageService) Conversation(ctx context.Context, userID, peerID string, limit, offset int) (*MessageListResult, error) {
	if userID == "" || peerID == "" {
		return nil, ErrIDRequired
	}
	pq := normalizePage(limit, offset)
	res, err := s.messages.Conversation(ctx, userID, peerID, pq)
	if err != nil {
		return nil, err
	}
	return &MessageListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *messageService) Inbox(ctx context.Context, userID string) ([]model.Message, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	return s.messages.Latest(ctx, userID, inboxLimit)
}

func normalizePage(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}
