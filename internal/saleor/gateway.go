package saleor

import (
	"context"

	"github.com/damian-lis/checkout-flow/internal/domain"
)

// FieldError is a business-level error entry returned inside a
// mutation payload, keyed by the remote field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CheckoutResult is the uniform payload of checkout mutations: the
// refreshed checkout plus business-level errors. Errors here never turn
// into Go errors; only transport failures do.
type CheckoutResult struct {
	Checkout *domain.Checkout
	Errors   []FieldError
}

// ShippingAddressUpdateResult additionally carries the shipping methods
// unlocked by the new address.
type ShippingAddressUpdateResult struct {
	Checkout        *domain.Checkout
	ShippingMethods []domain.ShippingMethod
	Errors          []FieldError
}

// PaymentCreateResult carries the created payment and the post-payment
// checkout used for the completion snapshot.
type PaymentCreateResult struct {
	PaymentID string
	Gateway   string
	Checkout  *domain.Checkout
	Errors    []FieldError
}

// OrderRef identifies the order a completed checkout converted into.
type OrderRef struct {
	ID      string `json:"id"`
	Number  string `json:"number"`
	Created string `json:"created"`
}

// CheckoutCompleteResult is the payload of checkout-complete.
type CheckoutCompleteResult struct {
	Order  *OrderRef
	Errors []FieldError
}

// CountryAreaChoice is one subdivision option of a country.
type CountryAreaChoice struct {
	Raw     string `json:"raw"`
	Verbose string `json:"verbose"`
}

// ValidationRules is the raw per-country rule set from the remote API.
type ValidationRules struct {
	RequiredFields     []string            `json:"requiredFields"`
	AllowedFields      []string            `json:"allowedFields"`
	PostalCodeMatchers []string            `json:"postalCodeMatchers"`
	PostalCodeExamples []string            `json:"postalCodeExamples"`
	CountryAreaChoices []CountryAreaChoice `json:"countryAreaChoices"`
}

type checkoutPayload struct {
	Checkout *domain.Checkout `json:"checkout"`
	Errors   []FieldError     `json:"errors"`
}

// CheckoutCreate creates a checkout on the configured channel with the
// given lines.
func (c *Client) CheckoutCreate(ctx context.Context, channel string, lines []CheckoutLineInput) (*CheckoutResult, error) {
	var result struct {
		CheckoutCreate checkoutPayload `json:"checkoutCreate"`
	}
	variables := map[string]interface{}{
		"channel": channel,
		"lines":   lines,
	}
	if err := c.execute(ctx, CheckoutCreateMutation, variables, &result); err != nil {
		return nil, err
	}
	return &CheckoutResult{
		Checkout: result.CheckoutCreate.Checkout,
		Errors:   result.CheckoutCreate.Errors,
	}, nil
}

// Checkout fetches a checkout by id. A nil checkout with a nil error
// means the remote knows no such checkout.
func (c *Client) Checkout(ctx context.Context, id string) (*domain.Checkout, error) {
	var result struct {
		Checkout *domain.Checkout `json:"checkout"`
	}
	if err := c.execute(ctx, CheckoutQuery, map[string]interface{}{"id": id}, &result); err != nil {
		return nil, err
	}
	return result.Checkout, nil
}

// EmailUpdate sets the checkout email.
func (c *Client) EmailUpdate(ctx context.Context, id, email string) (*CheckoutResult, error) {
	var result struct {
		CheckoutEmailUpdate checkoutPayload `json:"checkoutEmailUpdate"`
	}
	variables := map[string]interface{}{
		"id":    id,
		"email": email,
	}
	if err := c.execute(ctx, CheckoutEmailUpdateMutation, variables, &result); err != nil {
		return nil, err
	}
	return &CheckoutResult{
		Checkout: result.CheckoutEmailUpdate.Checkout,
		Errors:   result.CheckoutEmailUpdate.Errors,
	}, nil
}

// MetadataUpdate merges the given entries into the checkout metadata.
func (c *Client) MetadataUpdate(ctx context.Context, id string, input []domain.MetadataEntry) (*CheckoutResult, error) {
	var result struct {
		UpdateMetadata struct {
			Item   *domain.Checkout `json:"item"`
			Errors []FieldError     `json:"errors"`
		} `json:"updateMetadata"`
	}
	variables := map[string]interface{}{
		"id":    id,
		"input": input,
	}
	if err := c.execute(ctx, MetadataUpdateMutation, variables, &result); err != nil {
		return nil, err
	}
	return &CheckoutResult{
		Checkout: result.UpdateMetadata.Item,
		Errors:   result.UpdateMetadata.Errors,
	}, nil
}

// ShippingAddressUpdate sets the shipping address and returns the
// shipping methods available for it.
func (c *Client) ShippingAddressUpdate(ctx context.Context, id string, address AddressInput) (*ShippingAddressUpdateResult, error) {
	var result struct {
		CheckoutShippingAddressUpdate struct {
			Checkout *struct {
				domain.Checkout
				ShippingMethods []domain.ShippingMethod `json:"shippingMethods"`
			} `json:"checkout"`
			Errors []FieldError `json:"errors"`
		} `json:"checkoutShippingAddressUpdate"`
	}
	variables := map[string]interface{}{
		"id":              id,
		"shippingAddress": address,
	}
	if err := c.execute(ctx, ShippingAddressUpdateMutation, variables, &result); err != nil {
		return nil, err
	}
	out := &ShippingAddressUpdateResult{
		Errors: result.CheckoutShippingAddressUpdate.Errors,
	}
	if payload := result.CheckoutShippingAddressUpdate.Checkout; payload != nil {
		checkout := payload.Checkout
		out.Checkout = &checkout
		out.ShippingMethods = payload.ShippingMethods
	}
	return out, nil
}

// DeliveryMethodUpdate selects a delivery method for the checkout.
func (c *Client) DeliveryMethodUpdate(ctx context.Context, id, deliveryMethodID string) (*CheckoutResult, error) {
	var result struct {
		CheckoutDeliveryMethodUpdate checkoutPayload `json:"checkoutDeliveryMethodUpdate"`
	}
	variables := map[string]interface{}{
		"id":               id,
		"deliveryMethodId": deliveryMethodID,
	}
	if err := c.execute(ctx, DeliveryMethodUpdateMutation, variables, &result); err != nil {
		return nil, err
	}
	return &CheckoutResult{
		Checkout: result.CheckoutDeliveryMethodUpdate.Checkout,
		Errors:   result.CheckoutDeliveryMethodUpdate.Errors,
	}, nil
}

// BillingAddressUpdate sets the billing address.
func (c *Client) BillingAddressUpdate(ctx context.Context, id string, address AddressInput) (*CheckoutResult, error) {
	var result struct {
		CheckoutBillingAddressUpdate checkoutPayload `json:"checkoutBillingAddressUpdate"`
	}
	variables := map[string]interface{}{
		"id":             id,
		"billingAddress": address,
	}
	if err := c.execute(ctx, BillingAddressUpdateMutation, variables, &result); err != nil {
		return nil, err
	}
	return &CheckoutResult{
		Checkout: result.CheckoutBillingAddressUpdate.Checkout,
		Errors:   result.CheckoutBillingAddressUpdate.Errors,
	}, nil
}

// PaymentCreate creates a payment for the checkout.
func (c *Client) PaymentCreate(ctx context.Context, checkoutID string, input PaymentInput) (*PaymentCreateResult, error) {
	var result struct {
		CheckoutPaymentCreate struct {
			Payment *struct {
				ID      string `json:"id"`
				Gateway string `json:"gateway"`
			} `json:"payment"`
			Checkout *domain.Checkout `json:"checkout"`
			Errors   []FieldError     `json:"errors"`
		} `json:"checkoutPaymentCreate"`
	}
	variables := map[string]interface{}{
		"checkoutId": checkoutID,
		"input":      input,
	}
	if err := c.execute(ctx, PaymentCreateMutation, variables, &result); err != nil {
		return nil, err
	}
	out := &PaymentCreateResult{
		Checkout: result.CheckoutPaymentCreate.Checkout,
		Errors:   result.CheckoutPaymentCreate.Errors,
	}
	if payment := result.CheckoutPaymentCreate.Payment; payment != nil {
		out.PaymentID = payment.ID
		out.Gateway = payment.Gateway
	}
	return out, nil
}

// CheckoutComplete converts the checkout into an order, attaching the
// given metadata to the order.
func (c *Client) CheckoutComplete(ctx context.Context, checkoutID string, metadata []domain.MetadataEntry) (*CheckoutCompleteResult, error) {
	var result struct {
		CheckoutComplete struct {
			Order  *OrderRef    `json:"order"`
			Errors []FieldError `json:"errors"`
		} `json:"checkoutComplete"`
	}
	variables := map[string]interface{}{
		"checkoutId": checkoutID,
		"metadata":   metadata,
	}
	if err := c.execute(ctx, CheckoutCompleteMutation, variables, &result); err != nil {
		return nil, err
	}
	return &CheckoutCompleteResult{
		Order:  result.CheckoutComplete.Order,
		Errors: result.CheckoutComplete.Errors,
	}, nil
}

// Order fetches an order by id. A nil order with a nil error means the
// remote knows no such order.
func (c *Client) Order(ctx context.Context, id string) (*domain.Order, error) {
	var result struct {
		Order *domain.Order `json:"order"`
	}
	if err := c.execute(ctx, OrderQuery, map[string]interface{}{"id": id}, &result); err != nil {
		return nil, err
	}
	return result.Order, nil
}

// AddressValidationRules fetches the rule set for a country, optionally
// narrowed by a subdivision. A nil rule set is not an error; callers
// fall back to their base schema.
func (c *Client) AddressValidationRules(ctx context.Context, countryCode, countryArea string) (*ValidationRules, error) {
	var result struct {
		AddressValidationRules *ValidationRules `json:"addressValidationRules"`
	}
	variables := map[string]interface{}{
		"countryCode": countryCode,
	}
	if countryArea != "" {
		variables["countryArea"] = countryArea
	}
	if err := c.execute(ctx, AddressValidationRulesQuery, variables, &result); err != nil {
		return nil, err
	}
	return result.AddressValidationRules, nil
}
