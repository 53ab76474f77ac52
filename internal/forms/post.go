package forms

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/emilythestrangee/blogicum/backend/internal/blog"
	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

type PostForm struct {
	Title    string `schema:"title" json:"title"`
	Text     string `schema:"text" json:"text"`
	PubDate  string `schema:"pub_date" json:"pub_date"`
	Location string `schema:"location" json:"location"`
	Category string `schema:"category" json:"category"`
	Image    string `schema:"image" json:"image"`
}

func (f PostForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, 256)),
		validation.Field(&f.Text, validation.Required),
		validation.Field(&f.PubDate, validation.Required, validation.By(validDateTime)),
		validation.Field(&f.Location, validation.By(validID)),
		validation.Field(&f.Category, validation.By(validID)),
		validation.Field(&f.Image, validation.Length(0, 255)),
	)
}

// Input converts a validated form.
func (f PostForm) Input() blog.PostInput {
	pubDate, _ := ParseDateTime(f.PubDate)
	return blog.PostInput{
		Title:      f.Title,
		Text:       f.Text,
		PubDate:    pubDate,
		CategoryID: optionalID(f.Category),
		LocationID: optionalID(f.Location),
		Image:      f.Image,
	}
}

const dateTimeLocal = "2006-01-02T15:04"

// PostFormFrom pre-fills the form with an existing post.
func PostFormFrom(post *models.Post) PostForm {
	f := PostForm{
		Title:   post.Title,
		Text:    post.Text,
		PubDate: post.PubDate.UTC().Format(dateTimeLocal),
		Image:   post.Image,
	}
	if post.CategoryID != nil {
		f.Category = strconv.Itoa(*post.CategoryID)
	}
	if post.LocationID != nil {
		f.Location = strconv.Itoa(*post.LocationID)
	}
	return f
}
