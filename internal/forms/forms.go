// Package forms decodes and validates submitted form data. Nothing here
// touches storage; the results are handed to the blog service as inputs.
package forms

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gorilla/schema"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	return d
}

const maxMemory = 8 << 20

// Decode parses the request body into dst.
func Decode(r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return fmt.Errorf("parsing form: %w", err)
	}
	if err := decoder.Decode(dst, r.PostForm); err != nil {
		return fmt.Errorf("decoding form: %w", err)
	}
	return nil
}

var usernameRules = []validation.Rule{
	validation.Required,
	validation.Length(1, 150),
	validation.Match(regexp.MustCompile(`^[\w.@+-]+$`)).Error("may contain only letters, digits and @/./+/-/_"),
}

var pwdRules = []validation.Rule{validation.Required, validation.Length(8, 128)}

var pubDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime accepts datetime-local input and RFC 3339. Values without a
// zone are read as UTC; seconds are the finest precision kept.
func ParseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range pubDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, errors.New("enter a valid date/time")
}

func validDateTime(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := ParseDateTime(s)
	return err
}

func validID(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if id, err := strconv.Atoi(s); err != nil || id < 1 {
		return errors.New("select a valid choice")
	}
	return nil
}

// optionalID converts a validated id field; empty means "none".
func optionalID(s string) *int {
	if s == "" {
		return nil
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &id
}

