package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/damian-lis/checkout-flow/internal/checkout"
	"github.com/damian-lis/checkout-flow/internal/config"
	"github.com/damian-lis/checkout-flow/internal/domain"
	"github.com/damian-lis/checkout-flow/internal/saleor"
	flowerrors "github.com/damian-lis/checkout-flow/pkg/errors"
)

// Gateway is the remote surface the handlers need: everything the flow
// drives plus checkout creation.
type Gateway interface {
	checkout.Gateway
	CheckoutCreate(ctx context.Context, channel string, lines []saleor.CheckoutLineInput) (*saleor.CheckoutResult, error)
}

// CheckoutStateResponse renders the flow for the checkout page.
type CheckoutStateResponse struct {
	ID        string                  `json:"id"`
	Sections  []checkout.SectionView  `json:"sections"`
	Countries []domain.CountryDisplay `json:"countries"`
	Summary   SummaryResponse         `json:"summary"`
}

// SummaryResponse carries the order summary sidebar data.
type SummaryResponse struct {
	Lines      []domain.Line     `json:"lines"`
	TotalPrice domain.TaxedMoney `json:"total_price"`
}

func checkoutState(flow *checkout.Flow) CheckoutStateResponse {
	data := flow.Checkout()
	return CheckoutStateResponse{
		ID:        data.ID,
		Sections:  flow.Sections(),
		Countries: data.Channel.Countries,
		Summary: SummaryResponse{
			Lines:      data.Lines,
			TotalPrice: data.TotalPrice,
		},
	}
}

// HandleCreateCheckout handles POST /checkouts: creates a checkout with
// the configured product line and returns its id for redirect.
func HandleCreateCheckout(cfg *config.Config, gateway Gateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := gateway.CheckoutCreate(c.Request.Context(), cfg.Checkout.Channel, []saleor.CheckoutLineInput{
			{Quantity: 1, VariantID: cfg.Checkout.ProductVariantID},
		})
		if err != nil {
			logger.Error("Failed to create checkout", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Error while creating a checkout"})
			return
		}
		if len(res.Errors) > 0 || res.Checkout == nil {
			message := "Error while creating a checkout"
			if len(res.Errors) > 0 && res.Errors[0].Message != "" {
				message = res.Errors[0].Message
			}
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": message})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"checkout_id": res.Checkout.ID})
	}
}

// HandleGetCheckout handles GET /checkouts/:id.
func HandleGetCheckout(gateway Gateway, rules checkout.RulesResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow := checkout.NewFlow(gateway, rules, logger)
		if !loadFlow(c, flow, logger) {
			return
		}
		c.JSON(http.StatusOK, checkoutState(flow))
	}
}

// ContactSubmitRequest is the contact section payload.
type ContactSubmitRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// HandleContactSubmit handles POST /checkouts/:id/contact.
func HandleContactSubmit(gateway Gateway, rules checkout.RulesResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactSubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		flow := checkout.NewFlow(gateway, rules, logger)
		if !loadFlow(c, flow, logger) {
			return
		}

		result, err := flow.SubmitContact(c.Request.Context(), req.Name, req.Email)
		writeSubmitResult(c, flow, result, err, logger)
	}
}

// ShippingSubmitRequest is the shipping section payload: form values
// keyed by the autofill keys.
type ShippingSubmitRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}

// HandleShippingSubmit handles POST /checkouts/:id/shipping.
func HandleShippingSubmit(gateway Gateway, rules checkout.RulesResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ShippingSubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		flow := checkout.NewFlow(gateway, rules, logger)
		if !loadFlow(c, flow, logger) {
			return
		}

		result, err := flow.SubmitShipping(c.Request.Context(), req.Values)
		writeSubmitResult(c, flow, result, err, logger)
	}
}

// PaymentSubmitRequest is the payment section payload.
type PaymentSubmitRequest struct {
	CardNumber        string            `json:"card_number" binding:"required"`
	ExpiryDate        string            `json:"expiry_date"`
	CVC               string            `json:"cvc"`
	PaymentCountry    string            `json:"payment_country"`
	AddBillingAddress bool              `json:"add_billing_address"`
	Address           map[string]string `json:"address"`
}

// HandlePaymentSubmit handles POST /checkouts/:id/payment.
func HandlePaymentSubmit(gateway Gateway, rules checkout.RulesResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentSubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		flow := checkout.NewFlow(gateway, rules, logger)
		if !loadFlow(c, flow, logger) {
			return
		}

		result, err := flow.SubmitPayment(c.Request.Context(), checkout.PaymentForm{
			CardNumber:        req.CardNumber,
			ExpiryDate:        req.ExpiryDate,
			CVC:               req.CVC,
			PaymentCountry:    req.PaymentCountry,
			AddBillingAddress: req.AddBillingAddress,
			Address:           req.Address,
		})
		writeSubmitResult(c, flow, result, err, logger)
	}
}

func loadFlow(c *gin.Context, flow *checkout.Flow, logger *zap.Logger) bool {
	if err := flow.Load(c.Request.Context(), c.Param("id")); err != nil {
		writeFlowError(c, err, logger)
		return false
	}
	return true
}

func writeFlowError(c *gin.Context, err error, logger *zap.Logger) {
	if notFound, ok := err.(*flowerrors.ErrNotFound); ok {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}
	if locked, ok := err.(*flowerrors.ErrSectionLocked); ok {
		c.JSON(http.StatusConflict, gin.H{"error": locked.Error()})
		return
	}
	logger.Error("Checkout request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func writeSubmitResult(c *gin.Context, flow *checkout.Flow, result *checkout.Result, err error, logger *zap.Logger) {
	if err != nil {
		writeFlowError(c, err, logger)
		return
	}
	if !result.OK() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"field_errors": result.FieldErrors,
			"message":      result.Message,
		})
		return
	}

	response := gin.H{"sections": flow.Sections()}
	if result.OrderID != "" {
		response["order_id"] = result.OrderID
	}
	c.JSON(http.StatusOK, response)
}
