// Package client talks to the tumblog and twitter APIs and keeps feeds that are
// refetched after every write.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Comment struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type Post struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content,omitempty"`
	URL       string    `json:"url,omitempty"`
	Tags      []string  `json:"tags"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewPost struct {
	Type    string   `json:"type"`
	Content string   `json:"content,omitempty"`
	URL     string   `json:"url,omitempty"`
	Tags    []string `json:"tags"`
}

type Tweet struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New returns a client for the API rooted at baseURL, e.g. http://localhost:5000.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, post NewPost) (*Post, error) {
	var created Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", post, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) AddComment(ctx context.Context, postID, content string) (*Post, error) {
	var updated Post
	path := fmt.Sprintf("/api/posts/%s/comments", url.PathEscape(postID))
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPost, path, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) ListTweets(ctx context.Context) ([]Tweet, error) {
	var tweets []Tweet
	if err := c.do(ctx, http.MethodGet, "/api/tweets", nil, &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

func (c *Client) CreateTweet(ctx context.Context, content string) (*Tweet, error) {
	var created Tweet
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPost, "/api/tweets", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		var payload struct {
			Error string `json:"error"`
		}
		message := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
			message = payload.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
