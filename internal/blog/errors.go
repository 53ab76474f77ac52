package blog

import (
	"errors"
	"log/slog"
	"net/http"
)

// StatusError is a policy failure that knows how the web boundary reports it.
// Reason is a stable identifier; Text is what users see.
type StatusError struct {
	Code   int
	Reason string
	Text   string

	Err error
}

var (
	// ErrNotFound covers both missing records and records the viewer may not see.
	ErrNotFound = &StatusError{Code: http.StatusNotFound, Reason: "not_found", Text: "Not found"}

	ErrNotAuthor       = &StatusError{Code: http.StatusForbidden, Reason: "not_author", Text: "Only the author can change this"}
	ErrUnauthenticated = &StatusError{Code: http.StatusUnauthorized, Reason: "login_required", Text: "Login required"}

	// ErrConflict is returned by repositories when a unique column is already taken.
	ErrConflict = &StatusError{Code: http.StatusConflict, Reason: "conflict", Text: "Already exists"}
)

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Text + ": " + e.Err.Error()
	}
	return e.Text
}

func (e *StatusError) Unwrap() error { return e.Err }

// Is matches any StatusError with the same reason, wrapped or not.
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	return ok && t.Reason == e.Reason
}

func (e *StatusError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Int("code", e.Code), slog.String("reason", e.Reason)}
	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}
	return slog.GroupValue(attrs...)
}

// WrapStatus returns a copy of base carrying err as its cause.
func WrapStatus(base *StatusError, err error) error {
	wrapped := *base
	wrapped.Err = err
	return &wrapped
}

func asStatus(err error) (*StatusError, bool) {
	var st *StatusError
	ok := errors.As(err, &st)
	return st, ok
}

// ErrorCode returns the HTTP status carried by err, 500 for plain errors.
func ErrorCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if st, ok := asStatus(err); ok {
		return st.Code
	}
	return http.StatusInternalServerError
}

// ErrorText is the user-facing message for err; plain errors stay private.
func ErrorText(err error) string {
	if st, ok := asStatus(err); ok {
		return st.Text
	}
	return http.StatusText(http.StatusInternalServerError)
}
