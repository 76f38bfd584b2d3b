package style

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"buildyourcv/resume/model"
)

const (
	minRem  = 0.75
	remStep = 0.125
)

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New()
		validatorInst.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		mustRegister(validatorInst, "rem", validateRem)
		mustRegister(validatorInst, "section", func(fl validator.FieldLevel) bool {
			_, ok := model.ParseSectionID(fl.Field().String())
			return ok
		})
	})
	return validatorInst
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("style: register %q validation: %v", tag, err))
	}
}

// validateRem accepts "<n>rem" with n between 0.75 and the tag parameter,
// in steps of 0.125.
func validateRem(fl validator.FieldLevel) bool {
	value, ok := ParseRem(fl.Field().String())
	if !ok {
		return false
	}
	limit, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		return false
	}
	if value < minRem || value > limit {
		return false
	}
	steps := value / remStep
	return math.Abs(steps-math.Round(steps)) < 1e-9
}

// ParseRem reads a CSS rem length.
func ParseRem(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if !strings.HasSuffix(raw, "rem") {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "rem"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FieldError is one invalid setting.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every invalid setting.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid style: " + strings.Join(parts, "; ")
}

// Validate checks colours, sizes and section identifiers.
func Validate(cfg Config) error {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "hexcolor":
		return "must be a hex colour such as #2563eb"
	case "rem":
		return fmt.Sprintf("must be between %grem and %srem in steps of %grem", minRem, fe.Param(), remStep)
	case "section":
		return fmt.Sprintf("unknown section %q", fe.Value())
	default:
		return "is invalid"
	}
}
