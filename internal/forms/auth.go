package forms

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type SignupForm struct {
	Username string `schema:"username" json:"username"`
	Email    string `schema:"email" json:"email"`
	Password string `schema:"password" json:"password,omitempty"`
}

func (f SignupForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, usernameRules...),
		validation.Field(&f.Email, is.EmailFormat),
		validation.Field(&f.Password, pwdRules...),
	)
}

// Redacted drops the password so the form can be echoed back.
func (f SignupForm) Redacted() SignupForm {
	f.Password = ""
	return f
}

type LoginForm struct {
	Username string `schema:"username" json:"username"`
	Password string `schema:"password" json:"password,omitempty"`
	Next     string `schema:"next" json:"next,omitempty"`
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required),
		validation.Field(&f.Password, validation.Required),
	)
}

func (f LoginForm) Redacted() LoginForm {
	f.Password = ""
	return f
}
