package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PostCollection = "posts"

// PostDocument is a post as stored in the document collection, comments embedded.
type PostDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Type      string             `bson:"type"`
	Content   string             `bson:"content,omitempty"`
	URL       string             `bson:"url,omitempty"`
	Tags      []string           `bson:"tags"`
	Comments  []CommentDocument  `bson:"comments"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type CommentDocument struct {
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"createdAt"`
}
