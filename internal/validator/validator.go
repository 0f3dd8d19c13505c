// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"finhealth/internal/finance"
	"finhealth/internal/narrative"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	businessTypeRegex = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} &/.,'-]{0,99}$`)
	gstinRegex        = regexp.MustCompile(`^[0-9]{2}[A-Z0-9]{10}[0-9A-Z]{1}Z[0-9A-Z]{1}$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom tags on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("report_language", validateReportLanguage)
	_ = v.RegisterValidation("business_type", validateBusinessType)
	_ = v.RegisterValidation("risk_level", validateRiskLevel)
	_ = v.RegisterValidation("gstin", validateGSTIN)
}

func validateReportLanguage(fl validator.FieldLevel) bool {
	return narrative.IsSupportedLanguage(fl.Field().String())
}

func validateBusinessType(fl validator.FieldLevel) bool {
	return businessTypeRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateRiskLevel(fl validator.FieldLevel) bool {
	switch finance.Level(fl.Field().String()) {
	case finance.LevelLow, finance.LevelMedium, finance.LevelHigh:
		return true
	}
	return false
}

func validateGSTIN(fl validator.FieldLevel) bool {
	return gstinRegex.MatchString(strings.ToUpper(fl.Field().String()))
}
