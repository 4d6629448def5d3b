package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"microposts/pkg/apperr"
	"microposts/pkg/logger"
	"microposts/services/tumblog/internal/entity"
	"microposts/services/tumblog/internal/repo/persistent"
)

type PostUseCase interface {
	ListPosts(ctx context.Context) ([]*entity.Post, error)
	CreatePost(ctx context.Context, input CreatePostInput) (*entity.Post, error)
	AddComment(ctx context.Context, postID, content string) (*entity.Post, error)
}

type CreatePostInput struct {
	Type    string
	Content string
	URL     string
	Tags    []string
}

type Option func(*postUseCase)

// WithClock replaces the time source used for createdAt defaults.
func WithClock(now func() time.Time) Option {
	return func(uc *postUseCase) {
		uc.now = now
	}
}

type postUseCase struct {
	postRepo persistent.PostRepository
	logger   *logger.Logger
	now      func() time.Time
}

func NewPostUseCase(postRepo persistent.PostRepository, logger *logger.Logger, opts ...Option) PostUseCase {
	uc := &postUseCase{
		postRepo: postRepo,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *postUseCase) timestamp() time.Time {
	return uc.now().UTC().Truncate(time.Millisecond)
}

func (uc *postUseCase) ListPosts(ctx context.Context) ([]*entity.Post, error) {
	posts, err := uc.postRepo.List(ctx, persistent.SortByCreatedAt)
	if err != nil {
		uc.logger.Error("Failed to list posts: %v", err)
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (uc *postUseCase) CreatePost(ctx context.Context, input CreatePostInput) (*entity.Post, error) {
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	post := &entity.Post{
		Type:      entity.PostType(input.Type),
		Content:   input.Content,
		URL:       input.URL,
		Tags:      tags,
		Comments:  []entity.Comment{},
		CreatedAt: uc.timestamp(),
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		uc.logger.Error("Failed to create post: %v", err)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.logger.Info("Post created: %s (%s)", post.ID, post.Type)
	return post, nil
}

// AddComment appends a comment by reading the post, appending and writing it back.
// Two concurrent appends on the same post can lose one of them.
func (uc *postUseCase) AddComment(ctx context.Context, postID, content string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			uc.logger.Error("Failed to load post %s: %v", postID, err)
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	comment := entity.Comment{Content: content, CreatedAt: uc.timestamp()}
	post.Comments = append(post.Comments, comment)
	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := uc.postRepo.Update(ctx, post); err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			uc.logger.Error("Failed to save comment on post %s: %v", postID, err)
		}
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return post, nil
}
