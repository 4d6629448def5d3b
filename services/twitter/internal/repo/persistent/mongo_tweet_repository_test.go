package persistent

import (
	"context"
	"testing"
	"time"

	"microposts/pkg/apperr"
	"microposts/services/twitter/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func tweetDoc(id primitive.ObjectID, content string, createdAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "content", Value: content},
		{Key: "createdAt", Value: primitive.NewDateTimeFromTime(createdAt)},
	}
}

func TestMongoTweetRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("create sets id", func(mt *mtest.T) {
		repo := NewMongoTweetRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		tweet := &entity.Tweet{Content: "hello", CreatedAt: createdAt}
		require.NoError(mt, repo.Create(ctx, tweet))

		_, err := primitive.ObjectIDFromHex(tweet.ID)
		assert.NoError(mt, err)
	})

	mt.Run("create rejected by store", func(mt *mtest.T) {
		repo := NewMongoTweetRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "Document failed validation",
		}))

		tweet := &entity.Tweet{Content: "hello", CreatedAt: createdAt}
		err := repo.Create(ctx, tweet)

		var unavailable *apperr.StoreUnavailableError
		assert.ErrorAs(mt, err, &unavailable)
		assert.Empty(mt, tweet.ID)
	})

	mt.Run("list decodes documents", func(mt *mtest.T) {
		repo := NewMongoTweetRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		newer := primitive.NewObjectID()
		older := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			tweetDoc(newer, "second", createdAt.Add(time.Minute)),
			tweetDoc(older, "first", createdAt),
		))

		tweets, err := repo.List(ctx, SortByCreatedAt)

		require.NoError(mt, err)
		require.Len(mt, tweets, 2)
		assert.Equal(mt, newer.Hex(), tweets[0].ID)
		assert.Equal(mt, "second", tweets[0].Content)
		assert.Equal(mt, "first", tweets[1].Content)
		assert.True(mt, createdAt.Equal(tweets[1].CreatedAt))
	})

	mt.Run("list empty", func(mt *mtest.T) {
		repo := NewMongoTweetRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		tweets, err := repo.List(ctx, SortByCreatedAt)

		require.NoError(mt, err)
		assert.NotNil(mt, tweets)
		assert.Empty(mt, tweets)
	})

	mt.Run("list unknown sort key", func(mt *mtest.T) {
		repo := NewMongoTweetRepository(mt.Coll)

		_, err := repo.List(ctx, SortKey("likes"))

		var invalid *apperr.ValidationError
		assert.ErrorAs(mt, err, &invalid)
	})

	mt.Run("list command error", func(mt *mtest.T) {
		repo := NewMongoTweetRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		_, err := repo.List(ctx, SortByCreatedAt)

		assert.Equal(mt, 500, apperr.HTTPStatus(err))
	})
}

func TestEnsureTweetCollection(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("creates collection and index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		coll, err := EnsureTweetCollection(ctx, mt.DB)

		require.NoError(mt, err)
		assert.Equal(mt, "tweets", coll.Name())
	})

	mt.Run("existing collection is reused", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    48,
				Name:    "NamespaceExists",
				Message: "Collection already exists",
			}),
			mtest.CreateSuccessResponse(),
		)

		_, err := EnsureTweetCollection(ctx, mt.DB)

		assert.NoError(mt, err)
	})
}
