package persistent

import (
	"microposts/services/twitter/internal/entity"
	"microposts/services/twitter/internal/model"
)

func ToTweetEntity(m *model.TweetModel) *entity.Tweet {
	if m == nil {
		return nil
	}
	return &entity.Tweet{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func ToTweetModel(e *entity.Tweet) *model.TweetModel {
	if e == nil {
		return nil
	}
	return &model.TweetModel{
		ID:        e.ID,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
	}
}

func DocumentToTweetEntity(d *model.TweetDocument) *entity.Tweet {
	if d == nil {
		return nil
	}
	return &entity.Tweet{
		ID:        d.ID.Hex(),
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func ToTweetDocument(e *entity.Tweet) *model.TweetDocument {
	if e == nil {
		return nil
	}
	return &model.TweetDocument{
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
	}
}
