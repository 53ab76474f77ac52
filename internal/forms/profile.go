package forms

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/emilythestrangee/blogicum/backend/internal/blog"
	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

type ProfileForm struct {
	Username  string `schema:"username" json:"username"`
	FirstName string `schema:"first_name" json:"first_name"`
	LastName  string `schema:"last_name" json:"last_name"`
	Email     string `schema:"email" json:"email"`
}

func (f ProfileForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, usernameRules...),
		validation.Field(&f.FirstName, validation.Length(0, 150)),
		validation.Field(&f.LastName, validation.Length(0, 150)),
		validation.Field(&f.Email, validation.Length(0, 254), is.EmailFormat),
	)
}

func (f ProfileForm) Input() blog.ProfileInput {
	return blog.ProfileInput{
		Username:  f.Username,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	}
}

func ProfileFormFrom(user *models.User) ProfileForm {
	return ProfileForm{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}
