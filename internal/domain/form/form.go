// Package form holds the field-level validation and submission state shared
// by every form screen.
package form

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// GenericFailure is shown when a submission fails without a message of its own.
const GenericFailure = "An error occurred. Please try again."

// notBlankTag rejects strings that are empty after trimming.
const notBlankTag = "notblank"

// ErrAlreadySubmitting is returned when a second submission starts before the first finished.
var ErrAlreadySubmitting = errors.New("form is already submitting")

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report errors under the form field name instead of the Go struct name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		if s, ok := fl.Field().Interface().(string); ok {
			return strings.TrimSpace(s) != ""
		}
		return false
	})
}

// Errors maps a form field name to its message.
type Errors map[string]string

// Add records msg for field unless the field already has an error.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// Has reports whether field failed validation.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Any reports whether there are errors at all.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Check validates v using its `validate` tags.
// Keys come from the `form` tag and messages from the `label` tag:
// a failed notblank reads "<label> is required", anything else "<label> is invalid".
// PRE: v is a struct or pointer to struct
// POST: returns an empty (non-nil) map when v is valid
func Check(v any) Errors {
	errs := Errors{}
	err := validate.Struct(v)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("_form", GenericFailure)
		return errs
	}
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range verrs {
		label := fe.Field()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if l := sf.Tag.Get("label"); l != "" {
				label = l
			}
		}
		if fe.Tag() == notBlankTag || fe.Tag() == "required" {
			errs.Add(fe.Field(), label+" is required")
		} else {
			errs.Add(fe.Field(), label+" is invalid")
		}
	}
	return errs
}

// State tracks one form screen between submissions.
// INVARIANT: Submitting is true only between Begin and Finish
type State struct {
	Submitting bool
	Alert      string
	Failed     bool
}

// Begin enters the submitting state.
// PRE: not already submitting
func (s *State) Begin() error {
	if s.Submitting {
		return ErrAlreadySubmitting
	}
	s.Submitting = true
	s.Alert = ""
	s.Failed = false
	return nil
}

// Finish leaves the submitting state with the alert to show the user.
// A non-nil err marks the submission as failed.
func (s *State) Finish(alert string, err error) {
	s.Submitting = false
	s.Alert = alert
	s.Failed = err != nil
}
