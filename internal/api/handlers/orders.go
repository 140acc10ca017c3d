package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/damian-lis/checkout-flow/internal/checkout"
)

// OrderResponse renders the order confirmation page: the checkout
// sections in permanent overview mode plus the order number, creation
// date and the gateway the order was paid with.
type OrderResponse struct {
	ID             string                 `json:"id"`
	Number         string                 `json:"number"`
	Created        string                 `json:"created"`
	PaymentGateway string                 `json:"payment_gateway,omitempty"`
	Sections       []checkout.SectionView `json:"sections"`
	Summary        SummaryResponse        `json:"summary"`
}

// HandleGetOrder handles GET /orders/:id. All overview data comes from
// the checkout snapshot stored in the order metadata.
func HandleGetOrder(gateway Gateway, rules checkout.RulesResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow := checkout.NewFlow(gateway, rules, logger)
		if err := flow.LoadFromOrder(c.Request.Context(), c.Param("id")); err != nil {
			writeFlowError(c, err, logger)
			return
		}

		order := flow.Order()
		data := flow.Checkout()

		response := OrderResponse{
			ID:       order.ID,
			Number:   order.Number,
			Created:  order.Created,
			Sections: flow.Sections(),
			Summary: SummaryResponse{
				Lines:      data.Lines,
				TotalPrice: data.TotalPrice,
			},
		}
		if len(order.Payments) > 0 {
			gatewayID := order.Payments[0].Gateway
			response.PaymentGateway = checkout.PaymentGatewayNames[gatewayID]
			if response.PaymentGateway == "" {
				response.PaymentGateway = gatewayID
			}
		}

		c.JSON(http.StatusOK, response)
	}
}
