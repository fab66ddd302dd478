package controllers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validUnits are the accepted reservation/product quantity units.
var validUnits = map[string]bool{
	"g":   true,
	"kg":  true,
	"ton": true,
}

// RegisterValidations installs custom binding validators. Must be called
// once before the router starts handling requests.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("quantityunit", func(fl validator.FieldLevel) bool {
			return validUnits[fl.Field().String()]
		})
	}
}
