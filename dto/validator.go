package dto

import (
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jesuspadres/Vibe-Check/shared"
)

var validate *validator.Validate

var (
	twitterHandleRegex   = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)
	instagramHandleRegex = regexp.MustCompile(`^[A-Za-z0-9_.]{1,30}$`)
)

func init() {
	validate = validator.New()

	// Report errors under the JSON field names the client sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("website_url", validateWebsiteURL)
	validate.RegisterValidation("social_handle", validateSocialHandle)
	validate.RegisterValidation("not_reserved", validateNotReserved)
}

func GetValidator() *validator.Validate {
	return validate
}

// validateWebsiteURL expects a value already normalized by
// AuditRequest.Normalize: absolute http/https URL whose hostname
// contains at least one dot.
func validateWebsiteURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.Contains(u.Hostname(), ".")
}

// validateSocialHandle accepts either a short platform handle or the
// looser dotted form. The handle has its leading @ stripped by Normalize.
func validateSocialHandle(fl validator.FieldLevel) bool {
	handle := fl.Field().String()
	return twitterHandleRegex.MatchString(handle) || instagramHandleRegex.MatchString(handle)
}

func validateNotReserved(fl validator.FieldLevel) bool {
	handle := strings.ToLower(fl.Field().String())
	for _, reserved := range shared.ReservedHandles {
		if handle == reserved {
			return false
		}
	}
	return true
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func FormatValidationErrors(err error) []ValidationError {
	var errs []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "website_url":
				message = "Please enter a valid website URL (e.g., https://example.com) with a valid domain name"
			case "social_handle":
				message = "Handle must be 1-30 characters and contain only letters, numbers, underscores, and periods"
			case "not_reserved":
				message = "This handle is reserved and cannot be used"
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param() + " characters"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errs = append(errs, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errs
}

// CreateValidationErrorResponse folds per-field violations into the
// details map of the 400 response body, every violated field included.
func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	details := map[string][]string{}
	for _, ve := range FormatValidationErrors(err) {
		details[ve.Field] = append(details[ve.Field], ve.Message)
	}

	return ValidationErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data",
		Details: details,
	}
}
