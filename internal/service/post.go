package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"advocatehub/internal/model"
	"advocatehub/internal/repository"
)

var ErrEmptyContent = errors.New("post content is empty")

// PostListResult is a page of profile posts.
type PostListResult struct {
	Items []model.Post `json:"data"`
	Total int          `json:"total"`
}

// PostService manages profile posts.
type PostService interface {
	Create(ctx context.Context, authorID, content string) (*model.Post, error)
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) (*PostListResult, error)
}

type postService struct {
	posts repository.PostRepository
}

// NewPostService constructs a PostService.
func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, authorID, content string) (*model.Post, error) {
	if authorID == "" {
		return nil, ErrIDRequired
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	return s.posts.Create(ctx, &model.Post{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *postService) ListByAuthor(ctx context.Context, authorID string, limit, offset int) (*PostListResult, error) {
	if authorID == "" {
		return nil, ErrIDRequired
	}
	res, err := s.posts.ListByAuthor(ctx, authorID, normalizePage(limit, offset))
	if err != nil {
		return nil, err
	}
	return &PostListResult{Items: res.Items, Total: res.Total}, nil
}
