package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

func postRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	return verrs
}

func TestDecodePostForm(t *testing.T) {
	r := postRequest(url.Values{
		"title":    {"Title"},
		"text":     {"Text"},
		"pub_date": {"2024-03-01T10:30"},
		"category": {"3"},
		"location": {""},
		"unknown":  {"ignored"},
	})

	var f PostForm
	require.NoError(t, Decode(r, &f))
	require.NoError(t, f.Validate())

	in := f.Input()
	assert.Equal(t, "Title", in.Title)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), in.PubDate)
	require.NotNil(t, in.CategoryID)
	assert.Equal(t, 3, *in.CategoryID)
	assert.Nil(t, in.LocationID)
}

func TestPostFormValidation(t *testing.T) {
	tests := []struct {
		name   string
		form   PostForm
		fields []string
	}{
		{"empty", PostForm{}, []string{"title", "text", "pub_date"}},
		{"bad date", PostForm{Title: "t", Text: "x", PubDate: "tomorrow"}, []string{"pub_date"}},
		{"bad ids", PostForm{Title: "t", Text: "x", PubDate: "2024-03-01T10:30", Category: "abc", Location: "0"}, []string{"category", "location"}},
		{"long title", PostForm{Title: strings.Repeat("a", 257), Text: "x", PubDate: "2024-03-01T10:30"}, []string{"title"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verrs := fieldErrors(t, tt.form.Validate())
			for _, field := range tt.fields {
				assert.Contains(t, verrs, field)
			}
			assert.Len(t, verrs, len(tt.fields))
		})
	}
}

func TestParseDateTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 10, 30, 15, 0, time.UTC)
	for _, value := range []string{
		"2024-03-01T10:30:15Z",
		"2024-03-01T12:30:15+02:00",
		"2024-03-01T10:30:15",
		"2024-03-01 10:30:15",
		" 2024-03-01T10:30:15.999Z ",
	} {
		got, err := ParseDateTime(value)
		require.NoError(t, err, value)
		assert.Equal(t, want, got, value)
	}

	_, err := ParseDateTime("01/03/2024")
	assert.Error(t, err)
}

func TestPostFormFromRoundTrip(t *testing.T) {
	category, location := 4, 7
	post := &models.Post{
		Title:      "Title",
		Text:       "Text",
		PubDate:    time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		CategoryID: &category,
		LocationID: &location,
	}
	f := PostFormFrom(post)
	assert.Equal(t, "2024-03-01T10:30", f.PubDate)
	assert.Equal(t, "4", f.Category)
	require.NoError(t, f.Validate())

	in := f.Input()
	assert.Equal(t, post.PubDate, in.PubDate)
	assert.Equal(t, category, *in.CategoryID)
	assert.Equal(t, location, *in.LocationID)
}

func TestProfileFormValidation(t *testing.T) {
	ok := ProfileForm{Username: "new.user+1@x", Email: "new@example.com"}
	require.NoError(t, ok.Validate())

	verrs := fieldErrors(t, ProfileForm{Username: "has space", Email: "not-an-email"}.Validate())
	assert.Contains(t, verrs, "username")
	assert.Contains(t, verrs, "email")

	verrs = fieldErrors(t, ProfileForm{}.Validate())
	assert.Contains(t, verrs, "username")
	assert.NotContains(t, verrs, "email")
}

func TestCommentForm(t *testing.T) {
	verrs := fieldErrors(t, CommentForm{}.Validate())
	assert.Contains(t, verrs, "text")
	assert.NoError(t, CommentForm{Text: "hi"}.Validate())
}

func TestSignupAndLoginForms(t *testing.T) {
	verrs := fieldErrors(t, SignupForm{Username: "u", Email: "u@example.com", Password: "short"}.Validate())
	assert.Contains(t, verrs, "password")
	assert.NoError(t, SignupForm{Username: "u", Password: "long enough"}.Validate())

	verrs = fieldErrors(t, LoginForm{}.Validate())
	assert.Contains(t, verrs, "username")
	assert.Contains(t, verrs, "password")
}

func TestRedactedDropsPassword(t *testing.T) {
	assert.Empty(t, SignupForm{Username: "u", Password: "secret123"}.Redacted().Password)
	login := LoginForm{Username: "u", Password: "secret123", Next: "/posts/1/"}.Redacted()
	assert.Empty(t, login.Password)
	assert.Equal(t, "/posts/1/", login.Next)
}
