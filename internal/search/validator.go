package search

import "github.com/go-playground/validator/v10"

// Package-level validator instance for configuration validation.
var validate = validator.New()
