package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostModel is the relational row of a post. Tags are kept as a JSON array in a text column.
type PostModel struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Type      string         `gorm:"type:varchar(10);not null" json:"type"`
	Content   string         `gorm:"type:text" json:"content"`
	URL       string         `gorm:"type:text" json:"url"`
	Tags      []string       `gorm:"type:text;serializer:json" json:"tags"`
	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	Comments  []CommentModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type CommentModel struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"post_id"`
	Position  int       `gorm:"not null" json:"position"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (CommentModel) TableName() string {
	return "post_comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
