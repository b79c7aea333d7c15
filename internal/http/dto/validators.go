package dto

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"courtlistener.app/cl/internal/model"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]{1,30}$`)

// RegisterValidators installs the custom binding tags used by the request
// types in this package on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}

	validations := map[string]validator.Func{
		"usstate": func(fl validator.FieldLevel) bool {
			return model.IsUSState(fl.Field().String())
		},
		"alertfreq": func(fl validator.FieldLevel) bool {
			return model.AlertFrequency(fl.Field().String()).Valid()
		},
		"username": func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		},
	}

	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("registering %s validation: %w", tag, err)
		}
	}
	return nil
}
