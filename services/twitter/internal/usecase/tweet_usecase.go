package usecase

import (
	"context"
	"fmt"
	"time"

	"microposts/pkg/logger"
	"microposts/services/twitter/internal/entity"
	"microposts/services/twitter/internal/repo/persistent"
)

type TweetUseCase interface {
	ListTweets(ctx context.Context) ([]*entity.Tweet, error)
	CreateTweet(ctx context.Context, content string) (*entity.Tweet, error)
}

type Option func(*tweetUseCase)

// WithClock replaces the time source used for createdAt defaults.
func WithClock(now func() time.Time) Option {
	return func(uc *tweetUseCase) {
		uc.now = now
	}
}

type tweetUseCase struct {
	tweetRepo persistent.TweetRepository
	logger    *logger.Logger
	now       func() time.Time
}

func NewTweetUseCase(tweetRepo persistent.TweetRepository, logger *logger.Logger, opts ...Option) TweetUseCase {
	uc := &tweetUseCase{
		tweetRepo: tweetRepo,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *tweetUseCase) ListTweets(ctx context.Context) ([]*entity.Tweet, error) {
	tweets, err := uc.tweetRepo.List(ctx, persistent.SortByCreatedAt)
	if err != nil {
		uc.logger.Error("Failed to list tweets: %v", err)
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	return tweets, nil
}

// CreateTweet stores content as a new tweet. Length and presence are checked
// here, not by the HTTP layer.
func (uc *tweetUseCase) CreateTweet(ctx context.Context, content string) (*entity.Tweet, error) {
	tweet := &entity.Tweet{
		Content:   content,
		CreatedAt: uc.now().UTC().Truncate(time.Millisecond),
	}
	if err := tweet.Validate(); err != nil {
		return nil, err
	}

	if err := uc.tweetRepo.Create(ctx, tweet); err != nil {
		uc.logger.Error("Failed to create tweet: %v", err)
		return nil, fmt.Errorf("failed to create tweet: %w", err)
	}
	return tweet, nil
}
