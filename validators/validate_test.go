package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type media struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

type sample struct {
	Title  string  `json:"title" validate:"required,min=3"`
	Score  *int    `json:"score" validate:"required,gte=0,lte=100"`
	Videos []media `json:"videos" validate:"dive"`
}

func TestStruct_UsesJSONNames(t *testing.T) {
	score := 120
	errs := Struct(&sample{
		Title:  "ab",
		Score:  &score,
		Videos: []media{{Name: "intro", URL: "not a url"}},
	})

	assert.Equal(t, "title must be at least 3 characters long!", errs["title"])
	assert.Equal(t, "score must be 100 or less!", errs["score"])
	assert.Equal(t, "url must be a valid URL!", errs["videos[0].url"])
	assert.Len(t, errs, 3)
}

func TestStruct_Valid(t *testing.T) {
	score := 70
	assert.Empty(t, Struct(&sample{Title: "Fire", Score: &score}))
	assert.Equal(t, "score is required!", Struct(&sample{Title: "Fire"})["score"])
}

func TestVar(t *testing.T) {
	assert.True(t, Var("0b3b9e2a-61a4-4e4c-9d39-3c3f2f6f8b51", "required,uuid"))
	assert.False(t, Var("42", "required,uuid"))
}
