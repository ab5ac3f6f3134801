package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// New creates a new validator instance
func New() *Validator {
	v := validator.New()

	// Register custom tag name function to use JSON tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validators
	v.RegisterValidation("foldername", validateFolderName)
	v.RegisterValidation("rewritetype", validateRewriteType)
	v.RegisterValidation("contenttype", validateContentType)
	v.RegisterValidation("langcode", validateLangCode)

	return &Validator{validate: v}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	// Convert validation errors to our custom format
	var validationErrs ValidationErrors
	for _, err := range err.(validator.ValidationErrors) {
		validationErrs = append(validationErrs, ValidationError{
			Field:   err.Field(),
			Message: msgForTag(err),
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
		})
	}

	return validationErrs
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "foldername":
		return fmt.Sprintf("%s contains invalid characters (only letters, numbers, spaces, and -_.,&() are allowed)", field)
	case "rewritetype":
		return fmt.Sprintf("%s must be one of: rewrite, translate, summarize, manual", field)
	case "contenttype":
		return fmt.Sprintf("%s must be one of: meeting_notes, todo_list, illustration, video", field)
	case "langcode":
		return fmt.Sprintf("%s must be a BCP 47 language code like 'en' or 'pt-BR'", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// Custom validators

// validateFolderName validates folder name format
func validateFolderName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	// Allow letters (any language), numbers, spaces, and specific symbols
	validName := regexp.MustCompile(`^[\p{L}\p{N}\s\-_.,&()]+$`)
	return validName.MatchString(name)
}

// validateRewriteType validates the rewrite operation kind
func validateRewriteType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "rewrite", "translate", "summarize", "manual":
		return true
	}
	return false
}

// validateContentType validates the generated content kind
func validateContentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "meeting_notes", "todo_list", "illustration", "video":
		return true
	}
	return false
}

// validateLangCode validates a language code like "en" or "pt-BR"
func validateLangCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	pattern := regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z]{2,4})?$`)
	return pattern.MatchString(code)
}
