package persistent

import (
	"context"
	"errors"
	"fmt"

	"microposts/pkg/apperr"
	"microposts/services/tumblog/internal/entity"
	"microposts/services/tumblog/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// namespaceExists is returned by createCollection when the collection is already there.
const namespaceExists = 48

type mongoPostRepository struct {
	coll *mongo.Collection
}

func NewMongoPostRepository(coll *mongo.Collection) PostRepository {
	return &mongoPostRepository{coll: coll}
}

// EnsurePostCollection creates the posts collection with its schema validator and
// the createdAt index. It is safe to call on every start.
func EnsurePostCollection(ctx context.Context, db *mongo.Database) (*mongo.Collection, error) {
	validator := bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"type", "createdAt"},
			"properties": bson.M{
				"type": bson.M{
					"enum": bson.A{"text", "photo", "gif", "link"},
				},
				"content":   bson.M{"bsonType": "string"},
				"url":       bson.M{"bsonType": "string"},
				"tags":      bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
				"createdAt": bson.M{"bsonType": "date"},
				"comments": bson.M{
					"bsonType": "array",
					"items": bson.M{
						"bsonType": "object",
						"required": bson.A{"content", "createdAt"},
						"properties": bson.M{
							"content":   bson.M{"bsonType": "string", "minLength": 1},
							"createdAt": bson.M{"bsonType": "date"},
						},
					},
				},
			},
		},
	}

	opts := options.CreateCollection().SetValidator(validator)
	if err := db.CreateCollection(ctx, model.PostCollection, opts); err != nil {
		var cmdErr mongo.CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Code != namespaceExists {
			return nil, apperr.Unavailable("create posts collection", err)
		}
	}

	coll := db.Collection(model.PostCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, apperr.Unavailable("create posts index", err)
	}
	return coll, nil
}

func (r *mongoPostRepository) Create(ctx context.Context, post *entity.Post) error {
	doc := ToPostDocument(post)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return apperr.Unavailable("insert post", err)
	}
	post.ID = doc.ID.Hex()
	return nil
}

func (r *mongoPostRepository) List(ctx context.Context, sort SortKey) ([]*entity.Post, error) {
	if err := checkSortKey(sort); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{
		{Key: string(sort), Value: -1},
		{Key: "_id", Value: -1},
	})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, apperr.Unavailable("find posts", err)
	}
	defer cursor.Close(ctx)

	var docs []model.PostDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperr.Unavailable("decode posts", err)
	}

	posts := make([]*entity.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, DocumentToPostEntity(&docs[i]))
	}
	return posts, nil
}

func (r *mongoPostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound(postEntity, id)
	}

	var doc model.PostDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(postEntity, id)
		}
		return nil, apperr.Unavailable("find post", err)
	}
	return DocumentToPostEntity(&doc), nil
}

func (r *mongoPostRepository) Update(ctx context.Context, post *entity.Post) error {
	oid, err := primitive.ObjectIDFromHex(post.ID)
	if err != nil {
		return apperr.NotFound(postEntity, post.ID)
	}

	doc := ToPostDocument(post)
	doc.ID = oid

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return apperr.Unavailable(fmt.Sprintf("replace post %s", post.ID), err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound(postEntity, post.ID)
	}
	return nil
}
