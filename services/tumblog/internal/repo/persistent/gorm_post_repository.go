package persistent

import (
	"context"
	"errors"
	"fmt"

	"microposts/pkg/apperr"
	"microposts/services/tumblog/internal/entity"
	"microposts/services/tumblog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) PostRepository {
	return &gormPostRepository{db: db}
}

func orderedComments(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *gormPostRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
		for i := range postModel.Comments {
			postModel.Comments[i].PostID = postModel.ID
		}
	}

	if err := r.db.WithContext(ctx).Create(postModel).Error; err != nil {
		return apperr.Unavailable("insert post", err)
	}
	post.ID = postModel.ID
	return nil
}

func (r *gormPostRepository) List(ctx context.Context, sort SortKey) ([]*entity.Post, error) {
	if err := checkSortKey(sort); err != nil {
		return nil, err
	}

	var postModels []model.PostModel
	err := r.db.WithContext(ctx).
		Preload("Comments", orderedComments).
		Order(fmt.Sprintf("%s DESC", sortColumns[sort])).
		Order("id DESC").
		Find(&postModels).Error
	if err != nil {
		return nil, apperr.Unavailable("find posts", err)
	}

	posts := make([]*entity.Post, 0, len(postModels))
	for i := range postModels {
		posts = append(posts, ToPostEntity(&postModels[i]))
	}
	return posts, nil
}

func (r *gormPostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound(postEntity, id)
	}

	var postModel model.PostModel
	err := r.db.WithContext(ctx).
		Preload("Comments", orderedComments).
		Where("id = ?", id).
		First(&postModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(postEntity, id)
		}
		return nil, apperr.Unavailable("find post", err)
	}
	return ToPostEntity(&postModel), nil
}

// Update rewrites the post row and replaces its comment rows in one transaction.
func (r *gormPostRepository) Update(ctx context.Context, post *entity.Post) error {
	if _, err := uuid.Parse(post.ID); err != nil {
		return apperr.NotFound(postEntity, post.ID)
	}

	postModel := ToPostModel(post)
	comments := postModel.Comments
	postModel.Comments = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.PostModel{ID: post.ID}).
			Select("type", "content", "url", "tags").
			Updates(postModel)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound(postEntity, post.ID)
		}

		if err := tx.Where("post_id = ?", post.ID).Delete(&model.CommentModel{}).Error; err != nil {
			return err
		}
		if len(comments) == 0 {
			return nil
		}
		return tx.Create(&comments).Error
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return apperr.Unavailable(fmt.Sprintf("update post %s", post.ID), err)
	}
	return nil
}
