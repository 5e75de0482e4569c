package mocks

import (
	"context"

	"advocatehub/internal/model"
	"advocatehub/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Send(ctx context.Context, senderID, recipientID, body string) (*model.Message, error) {
	args := m.Called(ctx, senderID, recipientID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageService) Conversation(ctx context.Context, userID, peerID string, limit, offset int) (*service.MessageListResult, error) {
	args := m.Called(ctx, userID, peerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MessageListResult), args.Error(1)
}

func (m *MockMessageService) Inbox(ctx context.Context, userID string) ([]model.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, authorID, content string) (*model.Post, error) {
	args := m.Called(ctx, authorID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) ListByAuthor(ctx context.Context, authorID string, limit, offset int) (*service.PostListResult, error) {
	args := m.Called(ctx, authorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostListResult), args.Error(1)
}
