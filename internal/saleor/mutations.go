package saleor

import "github.com/damian-lis/checkout-flow/internal/domain"

// CheckoutCreateMutation creates a checkout with its initial lines
const CheckoutCreateMutation = `
mutation checkoutCreate($channel: String!, $lines: [CheckoutLineInput!]!) {
  checkoutCreate(input: { channel: $channel, lines: $lines }) {
    checkout {
      ...CheckoutFields
    }
    errors {
      field
      message
    }
  }
}
` + checkoutFieldsFragment

// CheckoutEmailUpdateMutation updates the checkout email
const CheckoutEmailUpdateMutation = `
mutation checkoutEmailUpdate($id: ID!, $email: String!) {
  checkoutEmailUpdate(id: $id, email: $email) {
    checkout {
      ...CheckoutFields
    }
    errors {
      field
      message
    }
  }
}
` + checkoutFieldsFragment

// MetadataUpdateMutation updates the checkout's generic metadata list
const MetadataUpdateMutation = `
mutation checkoutMetadataUpdate($id: ID!, $input: [MetadataInput!]!) {
  updateMetadata(id: $id, input: $input) {
    item {
      ... on Checkout {
        ...CheckoutFields
      }
    }
    errors {
      field
      message
    }
  }
}
` + checkoutFieldsFragment

// ShippingAddressUpdateMutation updates the shipping address and returns
// the shipping methods it unlocks
const ShippingAddressUpdateMutation = `
mutation checkoutShippingAddressUpdate($id: ID!, $shippingAddress: AddressInput!) {
  checkoutShippingAddressUpdate(id: $id, shippingAddress: $shippingAddress) {
    checkout {
      ...CheckoutFields
      shippingMethods {
        id
        name
      }
    }
    errors {
      field
      message
    }
  }
}
` + checkoutFieldsFragment

// DeliveryMethodUpdateMutation selects a delivery method
const DeliveryMethodUpdateMutation = `
mutation checkoutDeliveryMethodUpdate($id: ID!, $deliveryMethodId: ID!) {
  checkoutDeliveryMethodUpdate(id: $id, deliveryMethodId: $deliveryMethodId) {
    checkout {
      ...CheckoutFields
    }
    errors {
      field
      message
    }
  }
}
` + checkoutFieldsFragment

// BillingAddressUpdateMutation updates the billing address
const BillingAddressUpdateMutation = `
mutation checkoutBillingAddressUpdate($id: ID!, $billingAddress: AddressInput!) {
  checkoutBillingAddressUpdate(id: $id, billingAddress: $billingAddress) {
    checkout {
      ...CheckoutFields
    }
    errors {
      field
      message
    }
  }
}
` + checkoutFieldsFragment

// PaymentCreateMutation creates a payment for the checkout total
const PaymentCreateMutation = `
mutation checkoutPaymentCreate($checkoutId: ID!, $input: PaymentInput!) {
  checkoutPaymentCreate(checkoutId: $checkoutId, input: $input) {
    payment {
      id
      gateway
    }
    checkout {
      ...CheckoutFields
    }
    errors {
      field
      message
    }
  }
}
` + checkoutFieldsFragment

// CheckoutCompleteMutation converts the checkout into an order
const CheckoutCompleteMutation = `
mutation checkoutComplete($checkoutId: ID!, $metadata: [MetadataInput!]) {
  checkoutComplete(checkoutId: $checkoutId, metadata: $metadata) {
    order {
      id
      number
      created
    }
    errors {
      field
      message
    }
  }
}
`

// CheckoutLineInput is one line of a checkout-create call
type CheckoutLineInput struct {
	Quantity  int    `json:"quantity"`
	VariantID string `json:"variantId"`
}

// AddressInput is the shipping/billing address payload. StreetNumber and
// the countryArea fallback travel in Metadata, not as native fields.
type AddressInput struct {
	FirstName      string                 `json:"firstName,omitempty"`
	LastName       string                 `json:"lastName,omitempty"`
	CompanyName    string                 `json:"companyName,omitempty"`
	PostalCode     string                 `json:"postalCode,omitempty"`
	StreetAddress1 string                 `json:"streetAddress1,omitempty"`
	City           string                 `json:"city,omitempty"`
	Country        string                 `json:"country"`
	CountryArea    string                 `json:"countryArea,omitempty"`
	Metadata       []domain.MetadataEntry `json:"metadata,omitempty"`
}

// PaymentInput is the payment-create payload
type PaymentInput struct {
	Amount  float64 `json:"amount"`
	Gateway string  `json:"gateway"`
	Token   string  `json:"token"`
}
