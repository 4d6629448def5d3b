package persistent

import (
	"context"

	"microposts/pkg/apperr"
	"microposts/services/tumblog/internal/entity"
)

// PostRepository is the post collection. Implementations never validate; callers
// validate before Create and Update.
type PostRepository interface {
	// Create stores post and sets its ID.
	Create(ctx context.Context, post *entity.Post) error
	// List returns every post ordered by sort, descending.
	List(ctx context.Context, sort SortKey) ([]*entity.Post, error)
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	// Update replaces the stored post with post, comments included. Last writer wins.
	Update(ctx context.Context, post *entity.Post) error
}

type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByType      SortKey = "type"
	SortByContent   SortKey = "content"
	SortByURL       SortKey = "url"
)

var sortColumns = map[SortKey]string{
	SortByCreatedAt: "created_at",
	SortByType:      "type",
	SortByContent:   "content",
	SortByURL:       "url",
}

func checkSortKey(sort SortKey) error {
	if _, ok := sortColumns[sort]; !ok {
		return apperr.Invalid("Sort", apperr.Violation{
			Field: "sort",
			Rule:  "oneof",
			Param: "createdAt type content url",
		})
	}
	return nil
}

const postEntity = "post"
