package application

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/qiyas-prep/smartsearch/internal/domain"
)

// facetPattern accepts lowercase snake_case identifiers such as
// "verbal" or "reading_comprehension".
var facetPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// knownDifficulties lists the difficulty values the recommender understands.
var knownDifficulties = map[domain.Difficulty]struct{}{
	domain.DifficultyBeginner:     {},
	domain.DifficultyIntermediate: {},
	domain.DifficultyAdvanced:     {},
}

// configValidator validates Config with the custom tags registered below.
var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	if err := registerCustomValidators(v); err != nil {
		panic(fmt.Sprintf("register config validators: %v", err))
	}
	return v
}

// registerCustomValidators adds the "facet" and "difficulty" tags.
func registerCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("facet", validateFacet); err != nil {
		return fmt.Errorf("failed to register facet validator: %w", err)
	}
	if err := v.RegisterValidation("difficulty", validateDifficulty); err != nil {
		return fmt.Errorf("failed to register difficulty validator: %w", err)
	}
	return nil
}

// validateFacet checks that a category-like value is a lowercase identifier.
func validateFacet(fl validator.FieldLevel) bool {
	return facetPattern.MatchString(fl.Field().String())
}

// validateDifficulty checks that a value is one of the known difficulties.
func validateDifficulty(fl validator.FieldLevel) bool {
	_, ok := knownDifficulties[domain.Difficulty(fl.Field().String())]
	return ok
}
