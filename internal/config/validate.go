package config

import (
	"errors"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var configValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateRefreshGap, Config{})
	return v
}

// validateRefreshGap rejects a refresh interval shorter than the minimum gap
// between fetches; the limiter would refuse every other refresh.
func validateRefreshGap(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	if c.RefreshInterval < c.Source.MinInterval {
		sl.ReportError(c.RefreshInterval, "RefreshInterval", "RefreshInterval", "gtefield", "Source.MinInterval")
	}
}

// Validate reports every invalid setting in one error.
func (c Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return crerr.Wrap(err, "validate config")
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return crerr.Newf("invalid config: %s", strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "gtefield":
		return fmt.Sprintf("%s must be at least %s, got %v", field, fe.Param(), fe.Value())
	case "min", "max", "gt", "gte":
		return fmt.Sprintf("%s must satisfy %s=%s, got %v", field, fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s, got %q", field, fe.Tag(), fmt.Sprint(fe.Value()))
	}
}
