package config

import (
	stdErrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/cosunae/serialbox2/domain/entities"
	"github.com/cosunae/serialbox2/domain/errors"
	"github.com/cosunae/serialbox2/domain/ports"
	"github.com/go-playground/validator/v10"
)

var libNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Validator checks resolver configurations with go-playground/validator tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator. Field names in errors are the json names.
func NewValidator() ports.ConfigValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("libname", func(fl validator.FieldLevel) bool {
		return libNamePattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate returns a *errors.ConfigError for the first failing field.
func (v *Validator) Validate(cfg *entities.ResolverConfig) error {
	if cfg == nil {
		return &errors.ConfigError{Err: fmt.Errorf("config cannot be nil")}
	}

	err := v.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if stdErrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := fmt.Sprintf("value %v failed on '%s' rule", fe.Value(), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("value %v failed on '%s=%s' rule", fe.Value(), fe.Tag(), fe.Param())
		}
		return &errors.ConfigError{Field: fe.Field(), Err: stdErrors.New(msg)}
	}
	return &errors.ConfigError{Err: err}
}
