// Package form holds the validation rules the presentation layer applies to note
// input before calling the store.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aretw0/scribe/pkg/core"
)

// Variant selects a set of length bounds.
type Variant string

const (
	// Simple accepts titles of 1-100 and contents of 1-1000 characters.
	Simple Variant = "simple"
	// Strict accepts titles of 3-100 and contents of 10-2000 characters.
	Strict Variant = "strict"
)

type simpleInput struct {
	Title   string `validate:"min=1,max=100"`
	Content string `validate:"min=1,max=1000"`
}

type strictInput struct {
	Title   string `validate:"min=3,max=100"`
	Content string `validate:"min=10,max=2000"`
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// ValidationError aggregates the rejected fields of one submission.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Is lets errors.Is match core.ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == core.ErrValidation
}

// Field returns the error recorded for the named field ("title" or "content").
func (e *ValidationError) Field(name string) (FieldError, bool) {
	for _, fe := range e.Errors {
		if fe.Field == name {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Validator implements core.Validator on top of go-playground/validator.
type Validator struct {
	validate *validator.Validate
	variant  Variant
}

// New creates a validator for the given variant. Unknown variants fall back to Simple.
func New(variant Variant) *Validator {
	if variant != Strict {
		variant = Simple
	}
	return &Validator{
		validate: validator.New(),
		variant:  variant,
	}
}

// Variant returns the active set of bounds.
func (v *Validator) Variant() Variant {
	return v.variant
}

// Validate checks data against the variant bounds.
// It returns a *ValidationError listing every rejected field.
func (v *Validator) Validate(data core.NoteFormData) error {
	var input any
	switch v.variant {
	case Strict:
		input = strictInput{Title: data.Title, Content: data.Content}
	default:
		input = simpleInput{Title: data.Title, Content: data.Content}
	}

	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", core.ErrValidation, err)
	}

	out := &ValidationError{}
	for _, fe := range fieldErrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " is too long"
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

var _ core.Validator = (*Validator)(nil)
