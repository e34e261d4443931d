package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidations wires ledger-specific rules into gin's binding
// validator. Must be called once before routes are served.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("decimalgt0", decimalGreaterThanZero)
	}
}

// decimalGreaterThanZero rejects zero and negative amounts at bind time, so a
// non-positive amount never reaches the services.
func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	amount, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return amount.GreaterThan(decimal.Zero)
}
