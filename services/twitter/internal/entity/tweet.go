package entity

import (
	"time"

	"microposts/pkg/validation"
)

// MaxTweetLength is counted in characters (Unicode code points), not bytes.
const MaxTweetLength = 280

type Tweet struct {
	ID        string    `json:"id"`
	Content   string    `json:"content" validate:"required,max=280"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *Tweet) Validate() error {
	return validation.Struct("Tweet", t)
}
