package candidate

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// leading + or digit, then at least six digits/spaces/().- characters
	phoneRegex = regexp.MustCompile(`^[+\d][\d\s().-]{6,}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers the candidate_email and candidate_phone tags.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("candidate_email", validEmail)
	_ = v.RegisterValidation("candidate_phone", validPhone)
}

func validEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validPhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func ValidEmail(s string) bool {
	return validate.Var(s, "required,candidate_email") == nil
}

func ValidPhone(s string) bool {
	return validate.Var(s, "required,candidate_phone") == nil
}

// CoerceYears converts an extracted years value into a non-negative number.
// JSON numbers and numeric strings are accepted.
func CoerceYears(v any) (float64, bool) {
	var years float64
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		years = val
	case float32:
		years = float64(val)
	case int:
		years = float64(val)
	case int64:
		years = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		years = parsed
	default:
		return 0, false
	}
	if math.IsNaN(years) || math.IsInf(years, 0) || years < 0 {
		return 0, false
	}
	return years, true
}
