package saleor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/damian-lis/checkout-flow/internal/config"
	"github.com/damian-lis/checkout-flow/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.SaleorConfig{APIURL: srv.URL, Timeout: 5 * time.Second}, zap.NewNop())
}

func respondJSON(t *testing.T, w http.ResponseWriter, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	_, err := w.Write([]byte(body))
	require.NoError(t, err)
}

func TestExecuteSendsQueryAndVariables(t *testing.T) {
	var received GraphQLRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		respondJSON(t, w, `{"data":{}}`)
	})

	_, err := client.Execute(context.Background(), CheckoutQuery, map[string]interface{}{"id": "chk_1"})
	require.NoError(t, err)

	assert.Equal(t, CheckoutQuery, received.Query)
	assert.Equal(t, "chk_1", received.Variables["id"])
}

func TestExecuteGraphQLErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, `{"errors":[{"message":"variable $id is invalid"}]}`)
	})

	resp, err := client.Execute(context.Background(), CheckoutQuery, nil)
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestExecuteHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.Execute(context.Background(), CheckoutQuery, nil)
	assert.Error(t, err)
}

func TestCheckoutNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, `{"data":{"checkout":null}}`)
	})

	checkout, err := client.Checkout(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, checkout)
}

func TestCheckoutDecoding(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, `{"data":{"checkout":{
			"id":"chk_1",
			"email":"damian@example.com",
			"metadata":[{"key":"name","value":"Damian Lis"}],
			"totalPrice":{"gross":{"amount":99.99,"currency":"USD"}},
			"availablePaymentGateways":[{"id":"mirumee.payments.dummy","name":"Dummy"}],
			"channel":{"slug":"default-channel","countries":[{"code":"PL","country":"Poland"}]}
		}}}`)
	})

	checkout, err := client.Checkout(context.Background(), "chk_1")
	require.NoError(t, err)
	require.NotNil(t, checkout)

	assert.Equal(t, "chk_1", checkout.ID)
	assert.Equal(t, "Damian Lis", checkout.Name())
	assert.Equal(t, 99.99, checkout.TotalPrice.Gross.Amount)
	assert.True(t, checkout.HasPaymentGateway("mirumee.payments.dummy"))
	assert.Equal(t, "Poland", checkout.Channel.Countries[0].Country)
}

func TestShippingAddressUpdateDecoding(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, `{"data":{"checkoutShippingAddressUpdate":{
			"checkout":{
				"id":"chk_1",
				"shippingAddress":{"firstName":"Damian","country":{"code":"PL","country":"Poland"}},
				"shippingMethods":[{"id":"sm_1","name":"Standard"},{"id":"sm_2","name":"Express"}]
			},
			"errors":[]
		}}}`)
	})

	result, err := client.ShippingAddressUpdate(context.Background(), "chk_1", AddressInput{Country: "PL"})
	require.NoError(t, err)

	require.NotNil(t, result.Checkout)
	assert.Equal(t, "chk_1", result.Checkout.ID)
	assert.Equal(t, "Damian", result.Checkout.ShippingAddress.FirstName)
	require.Len(t, result.ShippingMethods, 2)
	assert.Equal(t, "sm_1", result.ShippingMethods[0].ID)
}

func TestShippingAddressUpdateBusinessError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, `{"data":{"checkoutShippingAddressUpdate":{
			"checkout":null,
			"errors":[{"field":"postalCode","message":"Invalid postal code"}]
		}}}`)
	})

	result, err := client.ShippingAddressUpdate(context.Background(), "chk_1", AddressInput{Country: "PL"})
	require.NoError(t, err)

	assert.Nil(t, result.Checkout)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "postalCode", result.Errors[0].Field)
}

func TestPaymentCreateDecoding(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, `{"data":{"checkoutPaymentCreate":{
			"payment":{"id":"pay_1","gateway":"mirumee.payments.dummy"},
			"checkout":{"id":"chk_1"},
			"errors":[]
		}}}`)
	})

	result, err := client.PaymentCreate(context.Background(), "chk_1", PaymentInput{
		Amount:  99.99,
		Gateway: "mirumee.payments.dummy",
		Token:   "4111 1111 1111 1111",
	})
	require.NoError(t, err)

	assert.Equal(t, "pay_1", result.PaymentID)
	assert.Equal(t, "mirumee.payments.dummy", result.Gateway)
	require.NotNil(t, result.Checkout)
}

func TestCheckoutCompleteDecoding(t *testing.T) {
	var received GraphQLRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		respondJSON(t, w, `{"data":{"checkoutComplete":{
			"order":{"id":"order_1","number":"42","created":"2024-01-02T03:04:05Z"},
			"errors":[]
		}}}`)
	})

	result, err := client.CheckoutComplete(context.Background(), "chk_1", []domain.MetadataEntry{
		{Key: domain.MetaKeyCheckoutData, Value: `{"id":"chk_1"}`},
	})
	require.NoError(t, err)

	require.NotNil(t, result.Order)
	assert.Equal(t, "order_1", result.Order.ID)
	assert.Equal(t, "42", result.Order.Number)

	metadata, ok := received.Variables["metadata"].([]interface{})
	require.True(t, ok)
	require.Len(t, metadata, 1)
}

func TestAddressValidationRulesVariables(t *testing.T) {
	var received GraphQLRequest
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		respondJSON(t, w, `{"data":{"addressValidationRules":{
			"requiredFields":["city"],
			"allowedFields":["city","companyName"],
			"postalCodeMatchers":["^\\d{5}$"],
			"postalCodeExamples":["12345"],
			"countryAreaChoices":[{"raw":"DS","verbose":"Dolnoslaskie"}]
		}}}`)
	}

	t.Run("country only", func(t *testing.T) {
		client := newTestClient(t, handler)
		rules, err := client.AddressValidationRules(context.Background(), "PL", "")
		require.NoError(t, err)
		require.NotNil(t, rules)

		assert.Equal(t, "PL", received.Variables["countryCode"])
		assert.NotContains(t, received.Variables, "countryArea")
		assert.Equal(t, []string{"city"}, rules.RequiredFields)
		assert.Equal(t, "Dolnoslaskie", rules.CountryAreaChoices[0].Verbose)
	})

	t.Run("country with area", func(t *testing.T) {
		client := newTestClient(t, handler)
		_, err := client.AddressValidationRules(context.Background(), "PL", "DS")
		require.NoError(t, err)
		assert.Equal(t, "DS", received.Variables["countryArea"])
	})
}

func TestOrderDecoding(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, `{"data":{"order":{
			"id":"order_1",
			"number":"42",
			"created":"2024-01-02T03:04:05Z",
			"payments":[{"gateway":"mirumee.payments.dummy"}],
			"metadata":[{"key":"checkoutData","value":"{\"id\":\"chk_1\",\"email\":\"damian@example.com\"}"}]
		}}}`)
	})

	order, err := client.Order(context.Background(), "order_1")
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, "42", order.Number)
	require.Len(t, order.Payments, 1)
	assert.Equal(t, "mirumee.payments.dummy", order.Payments[0].Gateway)

	snapshot, err := order.CheckoutSnapshot()
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, "damian@example.com", snapshot.Email)
}
