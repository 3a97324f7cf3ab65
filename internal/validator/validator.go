// Package validator provides the custom validation tags used by form
// structs, registered on gin's binding engine.
package validator

import (
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	registerOnce sync.Once
	fallback     *validator.Validate
)

// Register registers all custom validators with the Gin binding engine.
// It is safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerAll(v)
			return
		}
		// binding.Validator was replaced by something other than
		// go-playground; keep a private instance reading the same tags.
		fallback = validator.New(validator.WithRequiredStructEnabled())
		fallback.SetTagName("binding")
		registerAll(fallback)
	})
}

// Engine returns the validator that enforces `binding` tags, with every
// custom validation registered.
func Engine() *validator.Validate {
	Register()
	if fallback != nil {
		return fallback
	}
	return binding.Validator.Engine().(*validator.Validate)
}

func registerAll(v *validator.Validate) {
	_ = v.RegisterValidation("decimal", validateDecimal)
	_ = v.RegisterValidation("positive_decimal", validatePositiveDecimal)
	_ = v.RegisterValidation("max_digits", validateMaxDigits)
	_ = v.RegisterValidation("max_places", validateMaxPlaces)
	_ = v.RegisterValidation("max_whole", validateMaxWholeDigits)
	_ = v.RegisterValidation("date_ymd", validateDateYMD)
	_ = v.RegisterValidation("choice_id", validateChoiceID)
}

// DigitCounts returns the total number of significant digits and the number
// of fractional digits of d as written, trailing zeros included.
func DigitCounts(d decimal.Decimal) (digits, places int) {
	coefficient := new(big.Int).Abs(d.Coefficient())
	n := len(coefficient.String())
	exp := int(d.Exponent())

	if exp >= 0 {
		return n + exp, 0
	}
	places = -exp
	if places > n {
		return places, places
	}
	return n, places
}

func parseDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func paramInt(fl validator.FieldLevel) int {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic("validator: tag " + fl.GetTag() + " needs an integer parameter")
	}
	return n
}

func validateDecimal(fl validator.FieldLevel) bool {
	_, ok := parseDecimal(fl)
	return ok
}

func validatePositiveDecimal(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	return ok && d.IsPositive()
}

func validateMaxDigits(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	if !ok {
		return false
	}
	digits, _ := DigitCounts(d)
	return digits <= paramInt(fl)
}

func validateMaxPlaces(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	if !ok {
		return false
	}
	_, places := DigitCounts(d)
	return places <= paramInt(fl)
}

func validateMaxWholeDigits(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	if !ok {
		return false
	}
	digits, places := DigitCounts(d)
	return digits-places <= paramInt(fl)
}

func validateDateYMD(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validateChoiceID(fl validator.FieldLevel) bool {
	id, err := strconv.ParseUint(fl.Field().String(), 10, 64)
	return err == nil && id > 0
}
