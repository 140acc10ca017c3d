package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/damian-lis/checkout-flow/internal/checkout"
	"github.com/damian-lis/checkout-flow/internal/validation"
)

// ValidationRulesResponse exposes the resolved rules to the form layer,
// mainly for the country-area select choices.
type ValidationRulesResponse struct {
	RequiredFields     []string                       `json:"required_fields"`
	AllowedFields      []string                       `json:"allowed_fields"`
	PostalCodeExamples []string                       `json:"postal_code_examples"`
	CountryAreaChoices []validation.CountryAreaChoice `json:"country_area_choices"`
}

// HandleValidationRules handles GET /validation-rules?country=XX&country_area=YY.
// Re-requested by the form layer whenever the selected country or
// subdivision changes.
func HandleValidationRules(rules checkout.RulesResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		country := c.Query("country")
		if country == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "country is required"})
			return
		}

		resolved, err := rules.Resolve(c.Request.Context(), country, c.Query("country_area"))
		if err != nil {
			logger.Error("Failed to resolve validation rules", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch validation rules"})
			return
		}
		if resolved == nil {
			// No rules for this country; the form falls back to the
			// base schema.
			c.JSON(http.StatusOK, ValidationRulesResponse{})
			return
		}

		c.JSON(http.StatusOK, ValidationRulesResponse{
			RequiredFields:     resolved.RequiredFields,
			AllowedFields:      resolved.AllowedFields,
			PostalCodeExamples: resolved.PostalCodeExamples,
			CountryAreaChoices: resolved.CountryAreaChoices,
		})
	}
}
