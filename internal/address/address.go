// Package address translates between the remote API's address field
// names (firstName, streetAddress1, ...) and the browser autofill keys
// (given-name, street-address, ...) the forms are keyed by, and formats
// addresses for display.
package address

import (
	"strings"

	"github.com/damian-lis/checkout-flow/internal/domain"
)

// The nine autofill keys forms are keyed by.
const (
	KeyGivenName     = "given-name"
	KeyFamilyName    = "family-name"
	KeyOrganization  = "organization"
	KeyPostalCode    = "postal-code"
	KeyStreetAddress = "street-address"
	KeyStreetNumber  = "address-line1"
	KeyCity          = "address-level2"
	KeyCountry       = "country"
	KeyCountryArea   = "address-level1"
)

// FallbackCountryCode is used whenever an address carries no country.
const FallbackCountryCode = "US"

// defaultToAutocomplete maps remote field names to autofill keys.
var defaultToAutocomplete = map[string]string{
	"firstName":      KeyGivenName,
	"lastName":       KeyFamilyName,
	"companyName":    KeyOrganization,
	"postalCode":     KeyPostalCode,
	"streetAddress1": KeyStreetAddress,
	"streetNumber":   KeyStreetNumber,
	"city":           KeyCity,
	"country":        KeyCountry,
	"countryArea":    KeyCountryArea,
}

// autocompleteToDefault is the inverse of defaultToAutocomplete.
var autocompleteToDefault = func() map[string]string {
	inverse := make(map[string]string, len(defaultToAutocomplete))
	for key, value := range defaultToAutocomplete {
		inverse[value] = key
	}
	return inverse
}()

// ToAutocompleteKey maps a remote field name to its autofill key.
// Unknown names map to themselves, so non-address error fields survive
// the translation.
func ToAutocompleteKey(field string) string {
	if key, ok := defaultToAutocomplete[field]; ok {
		return key
	}
	return field
}

// ToAutocompleteFormat renders an address as a form-value map keyed by
// the autofill keys. StreetNumber is read from the metadata list; the
// countryArea falls back to its metadata entry when the native field is
// empty; a missing country falls back to FallbackCountryCode.
func ToAutocompleteFormat(addr *domain.Address) map[string]string {
	values := map[string]string{
		KeyGivenName:     "",
		KeyFamilyName:    "",
		KeyOrganization:  "",
		KeyPostalCode:    "",
		KeyStreetAddress: "",
		KeyStreetNumber:  "",
		KeyCity:          "",
		KeyCountry:       FallbackCountryCode,
		KeyCountryArea:   "",
	}
	if addr == nil {
		return values
	}

	values[KeyGivenName] = addr.FirstName
	values[KeyFamilyName] = addr.LastName
	values[KeyOrganization] = addr.CompanyName
	values[KeyPostalCode] = addr.PostalCode
	values[KeyStreetAddress] = addr.StreetAddress1
	values[KeyStreetNumber] = domain.MetadataValue(addr.Metadata, domain.MetaKeyStreetNumber)
	values[KeyCity] = addr.City
	if addr.Country.Code != "" {
		values[KeyCountry] = addr.Country.Code
	}
	values[KeyCountryArea] = addr.CountryArea
	if values[KeyCountryArea] == "" {
		values[KeyCountryArea] = domain.MetadataValue(addr.Metadata, domain.MetaKeyCountryArea)
	}
	return values
}

// ToDefaultFormat maps form values back to remote field names. Keys
// outside the nine autofill keys pass through unchanged, so card and
// payment fields survive a round trip untouched.
func ToDefaultFormat(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for key, value := range values {
		if field, ok := autocompleteToDefault[key]; ok {
			out[field] = value
			continue
		}
		out[key] = value
	}
	return out
}

// Display renders an address as a deterministic multi-line string: name
// line, city/street line and the resolved country label. An unknown
// country code omits the label line silently.
func Display(addr *domain.Address, countries []domain.CountryDisplay) string {
	if addr == nil {
		return ""
	}

	values := ToAutocompleteFormat(addr)

	var lines []string
	if line := joinFields(values[KeyGivenName], values[KeyFamilyName], values[KeyOrganization]); line != "" {
		lines = append(lines, line)
	}

	streetLine := joinFields(values[KeyStreetAddress], values[KeyStreetNumber], values[KeyCountryArea])
	if city := values[KeyCity]; city != "" {
		if streetLine != "" {
			streetLine = city + ", " + streetLine
		} else {
			streetLine = city
		}
	}
	if streetLine != "" {
		lines = append(lines, streetLine)
	}

	for _, country := range countries {
		if country.Code == values[KeyCountry] {
			lines = append(lines, country.Country)
			break
		}
	}

	return strings.Join(lines, "\n")
}

func joinFields(fields ...string) string {
	var present []string
	for _, field := range fields {
		if field != "" {
			present = append(present, field)
		}
	}
	return strings.Join(present, " ")
}
