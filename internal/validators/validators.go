package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
)

// Register installs the custom tags on gin's validator and makes errors
// report json field names.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator is not go-playground/validator")
	}
	return Install(v)
}

func Install(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonName)

	if err := v.RegisterValidation("clock", validateClock); err != nil {
		return err
	}
	return v.RegisterValidation("ymd", validateDate)
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// clock: HH:MM on the quarter-hour grid.
func validateClock(fl validator.FieldLevel) bool {
	m, err := domain.ParseClock(fl.Field().String())
	return err == nil && domain.IsQuarterAligned(m)
}

// ymd: YYYY-MM-DD.
func validateDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(domain.DateLayout, fl.Field().String())
	return err == nil
}

// Describe turns a binding error into the offending field and a message.
func Describe(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "body", "request body is malformed"
	}

	fe := verrs[0]
	field = fe.Field()
	switch fe.Tag() {
	case "required":
		return field, field + " is required"
	case "clock":
		return field, field + " must be HH:MM on a quarter hour"
	case "ymd":
		return field, field + " must be YYYY-MM-DD"
	case "oneof":
		return field, fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return field, fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return field, fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return field, fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return field, fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
