package address

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damian-lis/checkout-flow/internal/domain"
)

func testAddress() *domain.Address {
	return &domain.Address{
		FirstName:      "Damian",
		LastName:       "Lis",
		CompanyName:    "Mirumee",
		PostalCode:     "12345",
		StreetAddress1: "Main Street",
		City:           "Wroclaw",
		Country:        domain.CountryDisplay{Code: "PL", Country: "Poland"},
		CountryArea:    "DS",
		Metadata: []domain.MetadataEntry{
			{Key: domain.MetaKeyStreetNumber, Value: "12"},
		},
	}
}

func TestToAutocompleteFormat(t *testing.T) {
	values := ToAutocompleteFormat(testAddress())

	assert.Equal(t, "Damian", values[KeyGivenName])
	assert.Equal(t, "Lis", values[KeyFamilyName])
	assert.Equal(t, "Mirumee", values[KeyOrganization])
	assert.Equal(t, "12345", values[KeyPostalCode])
	assert.Equal(t, "Main Street", values[KeyStreetAddress])
	assert.Equal(t, "12", values[KeyStreetNumber])
	assert.Equal(t, "Wroclaw", values[KeyCity])
	assert.Equal(t, "PL", values[KeyCountry])
	assert.Equal(t, "DS", values[KeyCountryArea])
}

func TestToAutocompleteFormatCountryFallback(t *testing.T) {
	t.Run("nil address", func(t *testing.T) {
		values := ToAutocompleteFormat(nil)
		assert.Equal(t, FallbackCountryCode, values[KeyCountry])
	})

	t.Run("missing country code", func(t *testing.T) {
		addr := testAddress()
		addr.Country = domain.CountryDisplay{}
		values := ToAutocompleteFormat(addr)
		assert.Equal(t, FallbackCountryCode, values[KeyCountry])
	})
}

func TestToAutocompleteFormatCountryAreaFromMetadata(t *testing.T) {
	addr := testAddress()
	addr.CountryArea = ""
	addr.Metadata = append(addr.Metadata, domain.MetadataEntry{Key: domain.MetaKeyCountryArea, Value: "NH"})

	values := ToAutocompleteFormat(addr)

	assert.Equal(t, "NH", values[KeyCountryArea])
}

func TestRoundTrip(t *testing.T) {
	addr := testAddress()

	defaults := ToDefaultFormat(ToAutocompleteFormat(addr))

	assert.Equal(t, addr.FirstName, defaults["firstName"])
	assert.Equal(t, addr.LastName, defaults["lastName"])
	assert.Equal(t, addr.CompanyName, defaults["companyName"])
	assert.Equal(t, addr.PostalCode, defaults["postalCode"])
	assert.Equal(t, addr.StreetAddress1, defaults["streetAddress1"])
	assert.Equal(t, addr.City, defaults["city"])
	assert.Equal(t, addr.Country.Code, defaults["country"])
	assert.Equal(t, addr.CountryArea, defaults["countryArea"])

	number, err := strconv.Atoi(defaults["streetNumber"])
	require.NoError(t, err)
	assert.Equal(t, 12, number)
}

func TestToDefaultFormatPassThrough(t *testing.T) {
	values := map[string]string{
		KeyGivenName:   "Damian",
		"cardNumber":   "4111 1111 1111 1111",
		"expiryDate":   "12/30",
		"cvc":          "123",
		"paymentCountry": "NL",
	}

	defaults := ToDefaultFormat(values)

	assert.Equal(t, "Damian", defaults["firstName"])
	assert.Equal(t, "4111 1111 1111 1111", defaults["cardNumber"])
	assert.Equal(t, "12/30", defaults["expiryDate"])
	assert.Equal(t, "123", defaults["cvc"])
	assert.Equal(t, "NL", defaults["paymentCountry"])
}

func TestToAutocompleteKey(t *testing.T) {
	assert.Equal(t, KeyGivenName, ToAutocompleteKey("firstName"))
	assert.Equal(t, KeyCountryArea, ToAutocompleteKey("countryArea"))
	// Unknown fields map to themselves.
	assert.Equal(t, "email", ToAutocompleteKey("email"))
}

func TestDisplay(t *testing.T) {
	countries := []domain.CountryDisplay{
		{Code: "PL", Country: "Poland"},
		{Code: "US", Country: "United States of America"},
	}

	t.Run("full address", func(t *testing.T) {
		rendered := Display(testAddress(), countries)
		assert.Equal(t, "Damian Lis Mirumee\nWroclaw, Main Street 12 DS\nPoland", rendered)
	})

	t.Run("unknown country code omits the label", func(t *testing.T) {
		addr := testAddress()
		addr.Country = domain.CountryDisplay{Code: "DE", Country: "Germany"}
		rendered := Display(addr, countries)
		assert.Equal(t, "Damian Lis Mirumee\nWroclaw, Main Street 12 DS", rendered)
	})

	t.Run("nil address", func(t *testing.T) {
		assert.Empty(t, Display(nil, countries))
	})
}
