package saleor

const addressFieldsFragment = `
fragment AddressFields on Address {
  firstName
  lastName
  companyName
  postalCode
  streetAddress1
  city
  country {
    code
    country
  }
  countryArea
  metadata {
    key
    value
  }
}
`

const checkoutFieldsFragment = `
fragment CheckoutFields on Checkout {
  id
  email
  metadata {
    key
    value
  }
  shippingAddress {
    ...AddressFields
  }
  billingAddress {
    ...AddressFields
  }
  totalPrice {
    net {
      amount
      currency
    }
    gross {
      amount
      currency
    }
    tax {
      amount
      currency
    }
  }
  availablePaymentGateways {
    id
    name
  }
  channel {
    slug
    countries {
      code
      country
    }
  }
  lines {
    id
    quantity
    totalPrice {
      net {
        amount
        currency
      }
      gross {
        amount
        currency
      }
      tax {
        amount
        currency
      }
    }
    variant {
      name
      product {
        name
        thumbnail {
          url
        }
      }
    }
  }
}
` + addressFieldsFragment

// CheckoutQuery fetches a checkout by id
const CheckoutQuery = `
query getCheckout($id: ID!) {
  checkout(id: $id) {
    ...CheckoutFields
  }
}
` + checkoutFieldsFragment

// OrderQuery fetches an order by id
const OrderQuery = `
query getOrder($id: ID!) {
  order(id: $id) {
    id
    number
    created
    payments {
      gateway
    }
    metadata {
      key
      value
    }
  }
}
`

// AddressValidationRulesQuery fetches the per-country (optionally
// per-subdivision) address validation rules
const AddressValidationRulesQuery = `
query getAddressValidationRules($countryCode: CountryCode!, $countryArea: String) {
  addressValidationRules(countryCode: $countryCode, countryArea: $countryArea) {
    requiredFields
    allowedFields
    postalCodeMatchers
    postalCodeExamples
    countryAreaChoices {
      raw
      verbose
    }
  }
}
`
