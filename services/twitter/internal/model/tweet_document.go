package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const TweetCollection = "tweets"

type TweetDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"createdAt"`
}
