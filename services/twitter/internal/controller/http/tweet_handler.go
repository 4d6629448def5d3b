package http

import (
	"net/http"

	"microposts/pkg/apperr"
	"microposts/pkg/logger"
	"microposts/services/twitter/internal/usecase"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetUseCase usecase.TweetUseCase
	logger       *logger.Logger
}

func NewTweetHandler(tweetUseCase usecase.TweetUseCase, logger *logger.Logger) *TweetHandler {
	return &TweetHandler{
		tweetUseCase: tweetUseCase,
		logger:       logger,
	}
}

func (h *TweetHandler) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// CreateTweetRequest carries no binding rules; content is validated on create.
type CreateTweetRequest struct {
	Content string `json:"content"`
}

// ListTweets godoc
// @Summary      List tweets
// @Description  Get every tweet, newest first
// @Tags         tweets
// @Produce      json
// @Success      200  {array}   entity.Tweet
// @Failure      500  {object}  map[string]string
// @Router       /tweets [get]
func (h *TweetHandler) ListTweets(c *gin.Context) {
	tweets, err := h.tweetUseCase.ListTweets(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tweets)
}

// CreateTweet godoc
// @Summary      Create a tweet
// @Description  Create a tweet of at most 280 characters
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Param        request body CreateTweetRequest true "Tweet data"
// @Success      200  {object}  entity.Tweet
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tweets [post]
func (h *TweetHandler) CreateTweet(c *gin.Context) {
	var req CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tweet, err := h.tweetUseCase.CreateTweet(c.Request.Context(), req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tweet)
}
