package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validation struct {
	validator *validator.Validate
}

func NewValidation() *Validation {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterValidation("notblank", notBlank)
	v.RegisterValidation("int64range", fitsInt64)
	return &Validation{validator: v}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// fitsInt64 reports whether a numeric field can be stored as an int64.
func fitsInt64(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return f >= math.MinInt64 && f < math.MaxInt64
	default:
		return true
	}
}

// ValidationError describes why a single request field was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (v ValidationError) Error() string {
	return v.Message
}

type ValidationErrors []ValidationError

// Validate checks i against its validate tags. It returns nil when i is valid.
func (v *Validation) Validate(i any) ValidationErrors {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return ValidationErrors{{Field: "payload", Message: "The payload is invalid."}}
	}

	var errs ValidationErrors
	for _, fe := range fieldErrors {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: fieldMessage(fe.Field(), fe.Tag(), fe.Param()),
		})
	}
	return errs
}

func fieldMessage(field, tag, param string) string {
	switch tag {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, param)
	case "int64range":
		return fmt.Sprintf("The %s field is out of range.", field)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, param)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

// typeError converts a JSON type mismatch into a field validation error.
func typeError(err *json.UnmarshalTypeError) ValidationErrors {
	field := err.Field
	if field == "" {
		field = "payload"
	}

	msg := fmt.Sprintf("The %s field is invalid.", field)
	if err.Type != nil {
		switch err.Type.Kind() {
		case reflect.String:
			msg = fmt.Sprintf("The %s field must be a string.", field)
		case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
			msg = fmt.Sprintf("The %s field must be a number.", field)
		}
	}
	return ValidationErrors{{Field: field, Message: msg}}
}

// Result renders the errors the way clients expect them: a summary message
// plus every message grouped by field.
func (errs ValidationErrors) Result() ValidationErrorResult {
	res := ValidationErrorResult{Errors: map[string][]string{}}
	for _, e := range errs {
		res.Errors[e.Field] = append(res.Errors[e.Field], e.Message)
	}
	if len(errs) > 0 {
		res.Message = errs[0].Message
	}
	if more := len(errs) - 1; more == 1 {
		res.Message += " (and 1 more error)"
	} else if more > 1 {
		res.Message += fmt.Sprintf(" (and %d more errors)", more)
	}
	return res
}
