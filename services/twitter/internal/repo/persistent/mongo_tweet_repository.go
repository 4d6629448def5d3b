package persistent

import (
	"context"
	"errors"

	"microposts/pkg/apperr"
	"microposts/services/twitter/internal/entity"
	"microposts/services/twitter/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const namespaceExists = 48

type mongoTweetRepository struct {
	coll *mongo.Collection
}

func NewMongoTweetRepository(coll *mongo.Collection) TweetRepository {
	return &mongoTweetRepository{coll: coll}
}

// EnsureTweetCollection creates the tweets collection with a validator that
// bounds content to 280 characters, plus the createdAt index.
func EnsureTweetCollection(ctx context.Context, db *mongo.Database) (*mongo.Collection, error) {
	validator := bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"content", "createdAt"},
			"properties": bson.M{
				"content": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": entity.MaxTweetLength,
				},
				"createdAt": bson.M{"bsonType": "date"},
			},
		},
	}

	opts := options.CreateCollection().SetValidator(validator)
	if err := db.CreateCollection(ctx, model.TweetCollection, opts); err != nil {
		var cmdErr mongo.CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Code != namespaceExists {
			return nil, apperr.Unavailable("create tweets collection", err)
		}
	}

	coll := db.Collection(model.TweetCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, apperr.Unavailable("create tweets index", err)
	}
	return coll, nil
}

func (r *mongoTweetRepository) Create(ctx context.Context, tweet *entity.Tweet) error {
	doc := ToTweetDocument(tweet)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return apperr.Unavailable("insert tweet", err)
	}
	tweet.ID = doc.ID.Hex()
	return nil
}

func (r *mongoTweetRepository) List(ctx context.Context, sort SortKey) ([]*entity.Tweet, error) {
	if err := checkSortKey(sort); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{
		{Key: string(sort), Value: -1},
		{Key: "_id", Value: -1},
	})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, apperr.Unavailable("find tweets", err)
	}
	defer cursor.Close(ctx)

	var docs []model.TweetDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperr.Unavailable("decode tweets", err)
	}

	tweets := make([]*entity.Tweet, 0, len(docs))
	for i := range docs {
		tweets = append(tweets, DocumentToTweetEntity(&docs[i]))
	}
	return tweets, nil
}
