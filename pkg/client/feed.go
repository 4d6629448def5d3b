package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"microposts/pkg/logger"
)

var (
	ErrDraftIncomplete = errors.New("draft is incomplete")
	ErrEmptyComment    = errors.New("comment is empty")
	ErrEmptyTweet      = errors.New("tweet is empty")
)

// Feed holds the last list returned by the server, in the order received.
// Writes never touch the held list directly; a successful write is followed by a
// full Refresh. Failed calls leave the list as it was.
type Feed[T any] struct {
	mu     sync.RWMutex
	items  []T
	fetch  func(ctx context.Context) ([]T, error)
	logger *logger.Logger
	name   string
}

func newFeed[T any](name string, fetch func(ctx context.Context) ([]T, error), log *logger.Logger) *Feed[T] {
	return &Feed[T]{
		items:  []T{},
		fetch:  fetch,
		logger: log,
		name:   name,
	}
}

func (f *Feed[T]) Refresh(ctx context.Context) error {
	items, err := f.fetch(ctx)
	if err != nil {
		f.logger.Error("Error fetching %s: %v", f.name, err)
		return err
	}
	if items == nil {
		items = []T{}
	}

	f.mu.Lock()
	f.items = items
	f.mu.Unlock()
	return nil
}

// Items returns a copy of the held list.
func (f *Feed[T]) Items() []T {
	f.mu.RLock()
	defer f.mu.RUnlock()

	items := make([]T, len(f.items))
	copy(items, f.items)
	return items
}

func (f *Feed[T]) mutate(ctx context.Context, action string, write func(ctx context.Context) error) error {
	if err := write(ctx); err != nil {
		f.logger.Error("Error %s: %v", action, err)
		return err
	}
	return f.Refresh(ctx)
}

// PostDraft is the state of the post form before submission. Tags is the raw
// comma separated input.
type PostDraft struct {
	Type    string
	Content string
	URL     string
	Tags    string
}

// Ready reports whether the draft may be sent: text posts need content, every
// other type needs a URL.
func (d PostDraft) Ready() bool {
	if d.Type == "text" {
		return strings.TrimSpace(d.Content) != ""
	}
	return strings.TrimSpace(d.URL) != ""
}

func (d PostDraft) toNewPost() NewPost {
	return NewPost{
		Type:    d.Type,
		Content: d.Content,
		URL:     d.URL,
		Tags:    ParseTags(d.Tags),
	}
}

// ParseTags splits comma separated input, trims every tag and drops empty ones.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

type PostFeed struct {
	*Feed[Post]
	client *Client
}

func NewPostFeed(c *Client, log *logger.Logger) *PostFeed {
	return &PostFeed{
		Feed:   newFeed("posts", c.ListPosts, log),
		client: c,
	}
}

func (f *PostFeed) Submit(ctx context.Context, draft PostDraft) error {
	if !draft.Ready() {
		return ErrDraftIncomplete
	}
	return f.mutate(ctx, "creating post", func(ctx context.Context) error {
		_, err := f.client.CreatePost(ctx, draft.toNewPost())
		return err
	})
}

func (f *PostFeed) Comment(ctx context.Context, postID, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyComment
	}
	return f.mutate(ctx, "adding comment", func(ctx context.Context) error {
		_, err := f.client.AddComment(ctx, postID, content)
		return err
	})
}

type TweetFeed struct {
	*Feed[Tweet]
	client *Client
}

func NewTweetFeed(c *Client, log *logger.Logger) *TweetFeed {
	return &TweetFeed{
		Feed:   newFeed("tweets", c.ListTweets, log),
		client: c,
	}
}

func (f *TweetFeed) Submit(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyTweet
	}
	return f.mutate(ctx, "posting tweet", func(ctx context.Context) error {
		_, err := f.client.CreateTweet(ctx, content)
		return err
	})
}
