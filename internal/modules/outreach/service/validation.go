package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"microhub/internal/modules/outreach/domain"
	apperrors "microhub/internal/platform/errors"
)

const (
	notBlankTag        = "notblank"
	partnershipTypeTag = "partnership_type"
	positiveCountTag   = "positive_count"
)

func newValidator() *validator.Validate {
	v := validator.New()

	// Errors name fields by their label tag instead of the Go struct name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})

	_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation(partnershipTypeTag, func(fl validator.FieldLevel) bool {
		return domain.IsPartnershipType(fl.Field().String())
	})
	_ = v.RegisterValidation(positiveCountTag, func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
		return err == nil && n > 0
	})
	return v
}

// Validate checks a form's validate tags and reports every failing field by
// label, wrapped in apperrors.ErrInvalidInput.
func (s *OutreachService) Validate(form any) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %T: %w", form, err)
	}
	fields := make([]string, 0, len(fieldErrs))
	seen := map[string]bool{}
	for _, fe := range fieldErrs {
		d := describe(fe)
		if seen[d] {
			continue
		}
		seen[d] = true
		fields = append(fields, d)
	}
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, strings.Join(fields, ", "))
}

// describe names a failing field. Elements of a dived slice report the
// slice's label.
func describe(fe validator.FieldError) string {
	name, _, _ := strings.Cut(fe.Field(), "[")
	switch fe.Tag() {
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s (at least %s characters)", name, fe.Param())
		}
	case "email":
		return name + " (not a valid address)"
	}
	return name
}
