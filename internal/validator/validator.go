// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"stockledger/internal/models"
)

var tickerRegex = regexp.MustCompile(`^[A-Za-z0-9.\-]{1,10}$`)

// Register registers all custom validators with the Gin binding engine.
// decimal.Decimal fields are validated as float64, so numeric tags such as
// gt=0 apply to them directly.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("decimal_gt0", validateDecimalGT0)
		_ = v.RegisterValidation("transaction_kind", validateTransactionKind)
	}
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validateTicker(fl validator.FieldLevel) bool {
	return tickerRegex.MatchString(fl.Field().String())
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

// validateDecimalGT0 accepts a decimal (seen as float64) or a decimal string.
func validateDecimalGT0(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return field.Float() > 0
	case reflect.String:
		d, err := decimal.NewFromString(field.String())
		return err == nil && d.IsPositive()
	}
	return false
}

func validateTransactionKind(fl validator.FieldLevel) bool {
	return models.TransactionKind(fl.Field().String()).Valid()
}
