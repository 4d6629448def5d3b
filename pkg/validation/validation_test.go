package validation

import (
	"strings"
	"testing"

	"microposts/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Kind  string `json:"kind" validate:"required,oneof=a b"`
	Body  string `json:"body,omitempty" validate:"max=5"`
	Items []item `json:"items" validate:"dive"`
}

type item struct {
	Text string `json:"text" validate:"required"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct("Note", &note{Kind: "a", Body: "hello"})
	assert.NoError(t, err)
}

func TestStruct_CollectsEveryViolation(t *testing.T) {
	err := Struct("Note", &note{Kind: "c", Body: "too long", Items: []item{{Text: "ok"}, {}}})

	var validationErr *apperr.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Note", validationErr.Entity)
	assert.Equal(t, []apperr.Violation{
		{Field: "kind", Rule: "oneof", Param: "a b"},
		{Field: "body", Rule: "max", Param: "5"},
		{Field: "items[1].text", Rule: "required"},
	}, validationErr.Violations)
}

func TestStruct_MaxCountsCharactersNotBytes(t *testing.T) {
	err := Struct("Note", &note{Kind: "b", Body: strings.Repeat("é", 5)})
	assert.NoError(t, err)
}

func TestStruct_Required(t *testing.T) {
	err := Struct("Note", &note{})

	var validationErr *apperr.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Violations, 1)
	assert.Equal(t, "kind", validationErr.Violations[0].Field)
	assert.Equal(t, "required", validationErr.Violations[0].Rule)
}
