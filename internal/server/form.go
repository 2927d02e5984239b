package server

import (
	"errors"
	"fmt"
	"net/http"
)

// formError is a rejected form submission and the status to answer with.
type formError struct {
	status int
	err    error
}

func (e *formError) Error() string {
	return e.err.Error()
}

func (e *formError) Unwrap() error {
	return e.err
}

// formErrorStatus returns the HTTP status for an error from the form parsers.
func formErrorStatus(err error) int {
	var fe *formError
	if errors.As(err, &fe) {
		return fe.status
	}
	return http.StatusBadRequest
}

type createForm struct {
	title string
}

type updateForm struct {
	id   string
	done bool
}

// parseCreateForm reads the "title" field, which must be present and non-empty.
func parseCreateForm(w http.ResponseWriter, r *http.Request) (createForm, error) {
	if err := parseForm(w, r); err != nil {
		return createForm{}, err
	}

	title, err := requiredField(r, "title")
	if err != nil {
		return createForm{}, err
	}
	return createForm{title: title}, nil
}

// parseUpdateForm reads the "id" field, which must be present and non-empty,
// and the optional "done" checkbox.
func parseUpdateForm(w http.ResponseWriter, r *http.Request) (updateForm, error) {
	if err := parseForm(w, r); err != nil {
		return updateForm{}, err
	}

	id, err := requiredField(r, "id")
	if err != nil {
		return updateForm{}, err
	}

	// an unchecked checkbox is not submitted at all
	return updateForm{id: id, done: r.PostForm.Get("done") == checkboxOn}, nil
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &formError{
				status: http.StatusRequestEntityTooLarge,
				err:    fmt.Errorf("form body exceeds %d bytes: %w", tooLarge.Limit, err),
			}
		}
		return &formError{
			status: http.StatusBadRequest,
			err:    fmt.Errorf("malformed form body: %w", err),
		}
	}
	return nil
}

func requiredField(r *http.Request, name string) (string, error) {
	values, ok := r.PostForm[name]
	if !ok || len(values) == 0 || values[0] == "" {
		return "", errors.New("missing form field: " + name)
	}
	return values[0], nil
}
