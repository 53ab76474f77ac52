package forms

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CommentForm struct {
	Text string `schema:"text" json:"text"`
}

func (f CommentForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Text, validation.Required, validation.Length(1, 5000)),
	)
}
