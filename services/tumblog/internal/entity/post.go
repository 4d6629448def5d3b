package entity

import (
	"time"

	"microposts/pkg/validation"
)

type PostType string

const (
	PostTypeText  PostType = "text"
	PostTypePhoto PostType = "photo"
	PostTypeGIF   PostType = "gif"
	PostTypeLink  PostType = "link"
)

// PostTypes lists every accepted post type in display order.
func PostTypes() []PostType {
	return []PostType{PostTypeText, PostTypePhoto, PostTypeGIF, PostTypeLink}
}

type Post struct {
	ID        string    `json:"id"`
	Type      PostType  `json:"type" validate:"required,oneof=text photo gif link"`
	Content   string    `json:"content,omitempty"`
	URL       string    `json:"url,omitempty"`
	Tags      []string  `json:"tags"`
	Comments  []Comment `json:"comments" validate:"dive"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	Content   string    `json:"content" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the post and every embedded comment. URL presence is not
// enforced for media and link posts.
func (p *Post) Validate() error {
	return validation.Struct("Post", p)
}

func (c *Comment) Validate() error {
	return validation.Struct("Comment", c)
}
