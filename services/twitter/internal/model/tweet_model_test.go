package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTweetModel_BeforeCreate(t *testing.T) {
	tweet := &TweetModel{Content: "hello"}

	err := tweet.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, tweet.ID)

	id := tweet.ID
	assert.NoError(t, tweet.BeforeCreate(nil))
	assert.Equal(t, id, tweet.ID)
}

func TestTweetModel_TableName(t *testing.T) {
	assert.Equal(t, "tweets", TweetModel{}.TableName())
	assert.Equal(t, "tweets", TweetCollection)
}
