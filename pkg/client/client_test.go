package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"microposts/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI keeps posts and tweets in memory, newest first, and counts requests.
type fakeAPI struct {
	mu       sync.Mutex
	posts    []Post
	tweets   []Tweet
	requests map[string]int
	nextID   int
	failList bool
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	api := &fakeAPI{requests: map[string]int{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts", api.handlePosts)
	mux.HandleFunc("/api/posts/", api.handleComments)
	mux.HandleFunc("/api/tweets", api.handleTweets)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return api, server
}

func (a *fakeAPI) count(key string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests[key]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (a *fakeAPI) handlePosts(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests[r.Method+" posts"]++

	switch r.Method {
	case http.MethodGet:
		if a.failList {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "store unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, a.posts)
	case http.MethodPost:
		var in NewPost
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Type == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type is required"})
			return
		}
		a.nextID++
		post := Post{
			ID:        fmt.Sprintf("p%d", a.nextID),
			Type:      in.Type,
			Content:   in.Content,
			URL:       in.URL,
			Tags:      in.Tags,
			Comments:  []Comment{},
			CreatedAt: time.Now().UTC(),
		}
		a.posts = append([]Post{post}, a.posts...)
		writeJSON(w, http.StatusOK, post)
	}
}

func (a *fakeAPI) handleComments(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests[r.Method+" comments"]++

	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/posts/"), "/comments")
	var in struct {
		Content string `json:"content"`
	}
	json.NewDecoder(r.Body).Decode(&in)
	for i := range a.posts {
		if a.posts[i].ID == id {
			a.posts[i].Comments = append(a.posts[i].Comments, Comment{Content: in.Content, CreatedAt: time.Now().UTC()})
			writeJSON(w, http.StatusOK, a.posts[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "post not found"})
}

func (a *fakeAPI) handleTweets(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests[r.Method+" tweets"]++

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, a.tweets)
	case http.MethodPost:
		var in struct {
			Content string `json:"content"`
		}
		json.NewDecoder(r.Body).Decode(&in)
		if len([]rune(in.Content)) > 280 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Tweet validation failed: content must be at most 280 characters"})
			return
		}
		a.nextID++
		tweet := Tweet{ID: fmt.Sprintf("t%d", a.nextID), Content: in.Content, CreatedAt: time.Now().UTC()}
		a.tweets = append([]Tweet{tweet}, a.tweets...)
		writeJSON(w, http.StatusOK, tweet)
	}
}

func quietLogger() *logger.Logger {
	return logger.NewWithWriters(io.Discard, io.Discard)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ParseTags("a, b,,c "))
	assert.Equal(t, []string{}, ParseTags(""))
	assert.Equal(t, []string{}, ParseTags(" , ,"))
	assert.Equal(t, []string{"go", "go"}, ParseTags("go,go"))
}

func TestPostDraft_Ready(t *testing.T) {
	assert.True(t, PostDraft{Type: "text", Content: "hi"}.Ready())
	assert.False(t, PostDraft{Type: "text", Content: "   "}.Ready())
	assert.False(t, PostDraft{Type: "text", URL: "http://example.com"}.Ready())
	assert.True(t, PostDraft{Type: "photo", URL: "http://example.com/a.jpg"}.Ready())
	assert.False(t, PostDraft{Type: "link", Content: "no url"}.Ready())
}

func TestClient_APIError(t *testing.T) {
	_, server := newFakeAPI(t)
	c := New(server.URL + "/")

	_, err := c.AddComment(context.Background(), "missing", "hello")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "post not found", apiErr.Message)
}

func TestClient_CreateAndListTweets(t *testing.T) {
	_, server := newFakeAPI(t)
	c := New(server.URL)
	ctx := context.Background()

	created, err := c.CreateTweet(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", created.Content)

	tweets, err := c.ListTweets(ctx)
	require.NoError(t, err)
	require.Len(t, tweets, 1)
	assert.Equal(t, created.ID, tweets[0].ID)
}

func TestPostFeed_SubmitRefetches(t *testing.T) {
	api, server := newFakeAPI(t)
	feed := NewPostFeed(New(server.URL), quietLogger())
	ctx := context.Background()

	require.NoError(t, feed.Refresh(ctx))
	assert.Empty(t, feed.Items())

	require.NoError(t, feed.Submit(ctx, PostDraft{Type: "text", Content: "Post 1", Tags: "first, hello"}))
	require.NoError(t, feed.Submit(ctx, PostDraft{Type: "photo", URL: "http://example.com/photo.jpg"}))

	items := feed.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "photo", items[0].Type)
	assert.Equal(t, "Post 1", items[1].Content)
	assert.Equal(t, []string{"first", "hello"}, items[1].Tags)
	assert.Equal(t, 2, api.count("POST posts"))
	assert.Equal(t, 3, api.count("GET posts"))
}

func TestPostFeed_IncompleteDraftSendsNothing(t *testing.T) {
	api, server := newFakeAPI(t)
	feed := NewPostFeed(New(server.URL), quietLogger())

	err := feed.Submit(context.Background(), PostDraft{Type: "gif", Content: "missing url"})

	assert.ErrorIs(t, err, ErrDraftIncomplete)
	assert.Equal(t, 0, api.count("POST posts"))
	assert.Equal(t, 0, api.count("GET posts"))
}

func TestPostFeed_Comment(t *testing.T) {
	api, server := newFakeAPI(t)
	feed := NewPostFeed(New(server.URL), quietLogger())
	ctx := context.Background()

	require.NoError(t, feed.Submit(ctx, PostDraft{Type: "text", Content: "hello"}))
	postID := feed.Items()[0].ID

	assert.ErrorIs(t, feed.Comment(ctx, postID, "  "), ErrEmptyComment)
	assert.Equal(t, 0, api.count("POST comments"))

	require.NoError(t, feed.Comment(ctx, postID, "Nice post!"))
	items := feed.Items()
	require.Len(t, items[0].Comments, 1)
	assert.Equal(t, "Nice post!", items[0].Comments[0].Content)
}

func TestPostFeed_FailedWriteKeepsList(t *testing.T) {
	api, server := newFakeAPI(t)
	feed := NewPostFeed(New(server.URL), quietLogger())
	ctx := context.Background()

	require.NoError(t, feed.Submit(ctx, PostDraft{Type: "text", Content: "kept"}))
	getsBefore := api.count("GET posts")

	err := feed.Comment(ctx, "unknown", "hello")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, getsBefore, api.count("GET posts"))
	require.Len(t, feed.Items(), 1)
	assert.Equal(t, "kept", feed.Items()[0].Content)
}

func TestPostFeed_FailedRefreshKeepsList(t *testing.T) {
	api, server := newFakeAPI(t)
	feed := NewPostFeed(New(server.URL), quietLogger())
	ctx := context.Background()

	require.NoError(t, feed.Submit(ctx, PostDraft{Type: "text", Content: "kept"}))

	api.mu.Lock()
	api.failList = true
	api.mu.Unlock()

	err := feed.Refresh(ctx)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Len(t, feed.Items(), 1)
}

func TestTweetFeed_Submit(t *testing.T) {
	api, server := newFakeAPI(t)
	feed := NewTweetFeed(New(server.URL), quietLogger())
	ctx := context.Background()

	assert.ErrorIs(t, feed.Submit(ctx, " \n"), ErrEmptyTweet)
	assert.Equal(t, 0, api.count("POST tweets"))

	require.NoError(t, feed.Submit(ctx, "first"))
	require.NoError(t, feed.Submit(ctx, "second"))
	items := feed.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Content)

	err := feed.Submit(ctx, strings.Repeat("x", 281))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Len(t, feed.Items(), 2)
}

func TestFeed_ItemsIsACopy(t *testing.T) {
	_, server := newFakeAPI(t)
	feed := NewTweetFeed(New(server.URL), quietLogger())
	ctx := context.Background()
	require.NoError(t, feed.Submit(ctx, "kept"))

	items := feed.Items()
	items[0].Content = "changed"

	assert.Equal(t, "kept", feed.Items()[0].Content)
}
