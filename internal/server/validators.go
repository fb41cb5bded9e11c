package server

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// GSTIN format: state code, PAN, entity number, Z, check character.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

func validGSTIN(fl validator.FieldLevel) bool {
	return gstinPattern.MatchString(fl.Field().String())
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("gstin", validGSTIN)
	}
}
