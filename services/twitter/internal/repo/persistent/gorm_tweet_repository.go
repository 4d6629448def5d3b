package persistent

import (
	"context"
	"fmt"

	"microposts/pkg/apperr"
	"microposts/services/twitter/internal/entity"
	"microposts/services/twitter/internal/model"

	"gorm.io/gorm"
)

type gormTweetRepository struct {
	db *gorm.DB
}

func NewGormTweetRepository(db *gorm.DB) TweetRepository {
	return &gormTweetRepository{db: db}
}

func (r *gormTweetRepository) Create(ctx context.Context, tweet *entity.Tweet) error {
	tweetModel := ToTweetModel(tweet)
	if err := r.db.WithContext(ctx).Create(tweetModel).Error; err != nil {
		return apperr.Unavailable("insert tweet", err)
	}
	tweet.ID = tweetModel.ID
	return nil
}

func (r *gormTweetRepository) List(ctx context.Context, sort SortKey) ([]*entity.Tweet, error) {
	if err := checkSortKey(sort); err != nil {
		return nil, err
	}

	var tweetModels []model.TweetModel
	err := r.db.WithContext(ctx).
		Order(fmt.Sprintf("%s DESC", sortColumns[sort])).
		Order("id DESC").
		Find(&tweetModels).Error
	if err != nil {
		return nil, apperr.Unavailable("find tweets", err)
	}

	tweets := make([]*entity.Tweet, 0, len(tweetModels))
	for i := range tweetModels {
		tweets = append(tweets, ToTweetEntity(&tweetModels[i]))
	}
	return tweets, nil
}
