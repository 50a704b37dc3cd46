package config

import "github.com/go-playground/validator/v10"

var configValidator *validator.Validate

func V() *validator.Validate {
	if configValidator == nil {
		configValidator = validator.New(validator.WithRequiredStructEnabled())
	}
	return configValidator
}
