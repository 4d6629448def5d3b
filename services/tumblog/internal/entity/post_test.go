package entity

import (
	"encoding/json"
	"testing"
	"time"

	"microposts/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostType_Constants(t *testing.T) {
	assert.Equal(t, PostType("text"), PostTypeText)
	assert.Equal(t, PostType("photo"), PostTypePhoto)
	assert.Equal(t, PostType("gif"), PostTypeGIF)
	assert.Equal(t, PostType("link"), PostTypeLink)
	assert.Equal(t, []PostType{"text", "photo", "gif", "link"}, PostTypes())
}

func TestPost_Validate(t *testing.T) {
	for _, postType := range PostTypes() {
		post := &Post{Type: postType}
		assert.NoError(t, post.Validate(), postType)
	}
}

func TestPost_Validate_MediaWithoutURLIsAccepted(t *testing.T) {
	post := &Post{Type: PostTypePhoto, Content: "no picture attached"}
	assert.NoError(t, post.Validate())
}

func TestPost_Validate_MissingType(t *testing.T) {
	err := (&Post{Content: "Hello"}).Validate()

	var validationErr *apperr.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Post", validationErr.Entity)
	assert.Equal(t, []apperr.Violation{{Field: "type", Rule: "required"}}, validationErr.Violations)
}

func TestPost_Validate_UnknownType(t *testing.T) {
	err := (&Post{Type: "video"}).Validate()

	var validationErr *apperr.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "oneof", validationErr.Violations[0].Rule)
	assert.Equal(t, "Post validation failed: type must be one of [text, photo, gif, link]", err.Error())
}

func TestPost_Validate_EmptyComment(t *testing.T) {
	post := &Post{Type: PostTypeText, Comments: []Comment{{Content: "fine"}, {Content: ""}}}

	var validationErr *apperr.ValidationError
	require.ErrorAs(t, post.Validate(), &validationErr)
	assert.Equal(t, "comments[1].content", validationErr.Violations[0].Field)
}

func TestComment_Validate(t *testing.T) {
	assert.NoError(t, (&Comment{Content: "Nice post!"}).Validate())
	assert.Error(t, (&Comment{}).Validate())
}

func TestPost_JSON(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	post := &Post{
		ID:        "65e1c0ffee",
		Type:      PostTypeText,
		Content:   "Hello World",
		Tags:      []string{"first"},
		Comments:  []Comment{},
		CreatedAt: createdAt,
	}

	data, err := json.Marshal(post)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "65e1c0ffee",
		"type": "text",
		"content": "Hello World",
		"tags": ["first"],
		"comments": [],
		"createdAt": "2024-03-01T12:00:00Z"
	}`, string(data))
}
