package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mnuddindev/routinely/pkg/validation"
)

// ErrorResponse represents the structure of the error response.
type ErrorResponse struct {
	Errors []CError `json:"errors"`
}

// CError represents a single validation error.
type CError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Validator is a struct that holds the validator instance from the go-playground/validator package
type Validator struct {
	validator *validator.Validate
}

// NewValidator is a function that returns a new instance of the Validator struct
func NewValidator() *Validator {
	v := validator.New()

	CustomValidation(v)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validator: v}
}

// Validate checks the input struct and returns the per-field errors, or nil.
func (v *Validator) Validate(str interface{}) *ErrorResponse {
	err := v.validator.Struct(str)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ErrorResponse{Errors: []CError{{Field: "", Msg: err.Error()}}}
	}
	response := ErrorResponse{Errors: make([]CError, 0, len(validationErrors))}
	for _, err := range validationErrors {
		field := err.Field()
		message := getErrorMessage(field, err.Tag(), err.Param())
		response.Errors = append(response.Errors, CError{Field: field, Msg: message})
	}
	return &response
}

// getErrorMessage is a helper function that returns the error message based on the field and tag
func getErrorMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, param)
	case "email", "email_shape":
		return "Please enter in the format example@domain.com"
	case "person_name":
		return "Enter a first and last name using only letters, apostrophes and hyphens"
	case "username":
		return "Enter a username using only letters, numbers, underscore and hyphens"
	case "password":
		return "Minimum password length is 6 characters"
	case "routine_title":
		return "Enter a title under 70 characters long. Only letters and numbers allowed."
	case "content":
		return "Enter details under 1000 characters long."
	case "tag_list":
		return "Tags should be at least 3 characters long using only letters and numbers. Separate tags with a space."
	case "digit":
		return fmt.Sprintf("%s must be a non-negative whole number", field)
	default:
		return fmt.Sprintf("something wrong on %s; %s", field, tag)
	}
}

// CustomValidation registers the application's text rules as validator tags.
func CustomValidation(v *validator.Validate) {
	rules := map[string]func(string) bool{
		"person_name":   validation.ValidName,
		"username":      validation.ValidUsername,
		"email_shape":   validation.ValidEmail,
		"password":      validation.ValidPassword,
		"routine_title": validation.ValidTitle,
		"content":       validation.ValidContentInput,
		"tag_list":      validation.ValidTagList,
		"digit":         validation.ValidDigit,
	}
	for tag, rule := range rules {
		rule := rule
		v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String())
		})
	}
}
