package itinerary

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pbaille/trip/internal/domain"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	categories := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		categories = append(categories, string(c))
	}
	currencies := make([]string, 0, len(domain.Currencies()))
	for _, c := range domain.Currencies() {
		currencies = append(currencies, string(c))
	}

	v.RegisterStructValidationMapRules(map[string]string{
		"Time":     "hhmm",
		"Title":    "notblank",
		"Category": "oneof=" + strings.Join(categories, " "),
		"Currency": "oneof=" + strings.Join(currencies, " "),
		"Cost":     "gte=0",
	}, domain.Activity{})

	return v
}

// ValidateActivity checks an activity against the rules applied on upsert
func ValidateActivity(a domain.Activity) error {
	err := validate.Struct(a)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidActivity, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidActivity, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "hhmm":
		return fmt.Sprintf("%s must be HH:MM, got %q", field, fe.Value())
	case "notblank":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
