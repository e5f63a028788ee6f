package handlers

import (
	"strings"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by the request DTOs to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("billstatus", validateBillStatus)
}

func validateBillStatus(fl validator.FieldLevel) bool {
	return domain.BillStatus(strings.ToLower(fl.Field().String())).IsValid()
}
