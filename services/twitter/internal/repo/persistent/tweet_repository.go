package persistent

import (
	"context"

	"microposts/pkg/apperr"
	"microposts/services/twitter/internal/entity"
)

// TweetRepository is the tweet collection. Callers validate before Create.
type TweetRepository interface {
	// Create stores tweet and sets its ID.
	Create(ctx context.Context, tweet *entity.Tweet) error
	// List returns every tweet ordered by sort, descending.
	List(ctx context.Context, sort SortKey) ([]*entity.Tweet, error)
}

type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByContent   SortKey = "content"
)

var sortColumns = map[SortKey]string{
	SortByCreatedAt: "created_at",
	SortByContent:   "content",
}

func checkSortKey(sort SortKey) error {
	if _, ok := sortColumns[sort]; !ok {
		return apperr.Invalid("Sort", apperr.Violation{
			Field: "sort",
			Rule:  "oneof",
			Param: "createdAt content",
		})
	}
	return nil
}
