package trading

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/trading-engine-go/internal/domain/shared"
)

var validate = validator.New()

// validateStruct runs struct-tag validation and converts the first failure into a ValidationError
func validateStruct(entity string, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return shared.NewValidationError(
			strings.ToLower(fe.Field()),
			fmt.Sprintf("%s failed %s validation (value: '%v')", entity, fe.Tag(), fe.Value()),
		)
	}
	return shared.NewValidationError(entity, err.Error())
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("quantity", fmt.Sprintf("quantity must be positive, got %d", quantity))
	}
	return nil
}

func validateSeason(season shared.Season) error {
	if season == "" {
		return shared.NewValidationError("season", "season is required")
	}
	if !season.IsValid() {
		return shared.NewValidationError("season", fmt.Sprintf("invalid season %q", season))
	}
	return nil
}
