package board

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tmahmud/shikkha/core"
)

// Banner display sizes.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Notice is an announcement posted by an admin. Immutable once created.
type Notice struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"` // display date, set at creation
	Link    string `json:"link,omitempty"`
}

// Banner is a picture with a caption shown on the student home view.
type Banner struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"` // data-URL image blob
	Text      string    `json:"text"`
	Size      string    `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// SchoolLink is an external resource link.
type SchoolLink struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type NewNotice struct {
	Title   string `json:"title" validate:"required,notblank"`
	Content string `json:"content" validate:"required,notblank"`
	Link    string `json:"link" validate:"omitempty,url"`
}

func (nn *NewNotice) Validate(validate *validator.Validate) error {
	nn.Title = core.CleanString(nn.Title)
	nn.Content = core.CleanString(nn.Content)
	nn.Link = core.CleanString(nn.Link)
	return validate.Struct(nn)
}

type NewBanner struct {
	ImageURL string `json:"imageUrl" validate:"required"`
	Text     string `json:"text"`
	Size     string `json:"size" validate:"required,oneof=small medium large"`
}

func (nb *NewBanner) Validate(validate *validator.Validate) error {
	nb.Text = core.CleanString(nb.Text)
	nb.Size = core.CleanString(nb.Size, true /* lower */)
	return validate.Struct(nb)
}

type NewLink struct {
	Title string `json:"title" validate:"required,notblank"`
	URL   string `json:"url" validate:"required,url"`
}

func (nl *NewLink) Validate(validate *validator.Validate) error {
	nl.Title = core.CleanString(nl.Title)
	nl.URL = core.CleanString(nl.URL)
	return validate.Struct(nl)
}
