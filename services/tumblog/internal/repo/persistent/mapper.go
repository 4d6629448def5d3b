package persistent

import (
	"microposts/services/tumblog/internal/entity"
	"microposts/services/tumblog/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:        m.ID,
		Type:      entity.PostType(m.Type),
		Content:   m.Content,
		URL:       m.URL,
		Tags:      copyTags(m.Tags),
		Comments:  make([]entity.Comment, len(m.Comments)),
		CreatedAt: m.CreatedAt.UTC(),
	}
	for i, c := range m.Comments {
		post.Comments[i] = entity.Comment{Content: c.Content, CreatedAt: c.CreatedAt.UTC()}
	}
	return post
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	post := &model.PostModel{
		ID:        e.ID,
		Type:      string(e.Type),
		Content:   e.Content,
		URL:       e.URL,
		Tags:      copyTags(e.Tags),
		CreatedAt: e.CreatedAt,
	}
	if len(e.Comments) > 0 {
		post.Comments = make([]model.CommentModel, len(e.Comments))
		for i, c := range e.Comments {
			post.Comments[i] = model.CommentModel{
				PostID:    e.ID,
				Position:  i,
				Content:   c.Content,
				CreatedAt: c.CreatedAt,
			}
		}
	}
	return post
}

func DocumentToPostEntity(d *model.PostDocument) *entity.Post {
	if d == nil {
		return nil
	}

	post := &entity.Post{
		ID:        d.ID.Hex(),
		Type:      entity.PostType(d.Type),
		Content:   d.Content,
		URL:       d.URL,
		Tags:      copyTags(d.Tags),
		Comments:  make([]entity.Comment, len(d.Comments)),
		CreatedAt: d.CreatedAt.UTC(),
	}
	for i, c := range d.Comments {
		post.Comments[i] = entity.Comment{Content: c.Content, CreatedAt: c.CreatedAt.UTC()}
	}
	return post
}

// ToPostDocument leaves the document ID unset; repositories own ID conversion.
func ToPostDocument(e *entity.Post) *model.PostDocument {
	if e == nil {
		return nil
	}

	doc := &model.PostDocument{
		Type:      string(e.Type),
		Content:   e.Content,
		URL:       e.URL,
		Tags:      copyTags(e.Tags),
		Comments:  make([]model.CommentDocument, len(e.Comments)),
		CreatedAt: e.CreatedAt,
	}
	for i, c := range e.Comments {
		doc.Comments[i] = model.CommentDocument{Content: c.Content, CreatedAt: c.CreatedAt}
	}
	return doc
}

func copyTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
