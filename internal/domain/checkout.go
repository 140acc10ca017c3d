package domain

// Metadata keys used to carry fields the remote schema has no native
// column for. Every smuggled value goes through this table so the
// convention has exactly one point of change.
const (
	MetaKeyName         = "name"
	MetaKeyStreetNumber = "streetNumber"
	MetaKeyCountryArea  = "countryArea"
	MetaKeyCheckoutData = "checkoutData"
)

// MetadataEntry is one key-value pair of a remote entity's generic
// metadata list.
type MetadataEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MetadataValue returns the value stored under key, or "" when absent.
func MetadataValue(entries []MetadataEntry, key string) string {
	for _, entry := range entries {
		if entry.Key == key {
			return entry.Value
		}
	}
	return ""
}

// CountryDisplay carries a country code together with its display name.
type CountryDisplay struct {
	Code    string `json:"code"`
	Country string `json:"country"`
}

// Address is a shipping or billing address embedded in a checkout.
// StreetNumber and a countryArea fallback are not native remote fields;
// they live in Metadata under MetaKeyStreetNumber / MetaKeyCountryArea.
type Address struct {
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	CompanyName    string          `json:"companyName"`
	PostalCode     string          `json:"postalCode"`
	StreetAddress1 string          `json:"streetAddress1"`
	City           string          `json:"city"`
	Country        CountryDisplay  `json:"country"`
	CountryArea    string          `json:"countryArea"`
	Metadata       []MetadataEntry `json:"metadata"`
}

// Money is a single amount in a currency.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// TaxedMoney carries the net/gross/tax breakdown of a price.
type TaxedMoney struct {
	Net   Money `json:"net"`
	Gross Money `json:"gross"`
	Tax   Money `json:"tax"`
}

// PaymentGateway is one gateway offered for a checkout.
type PaymentGateway struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Channel carries the set of sellable countries.
type Channel struct {
	Slug      string           `json:"slug"`
	Countries []CountryDisplay `json:"countries"`
}

// ProductThumbnail is the media shown next to a line item.
type ProductThumbnail struct {
	URL string `json:"url"`
}

// Product describes the product behind a line's variant.
type Product struct {
	Name      string           `json:"name"`
	Thumbnail ProductThumbnail `json:"thumbnail"`
}

// ProductVariant is the concrete variant a line was created for.
type ProductVariant struct {
	Name    string  `json:"name"`
	Product Product `json:"product"`
}

// Line is one checkout line item.
type Line struct {
	ID         string         `json:"id"`
	Quantity   int            `json:"quantity"`
	TotalPrice TaxedMoney     `json:"totalPrice"`
	Variant    ProductVariant `json:"variant"`
}

// ShippingMethod is one delivery option returned after a shipping
// address update.
type ShippingMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Checkout is the root aggregate. It is created before any section
// renders, mutated by each section's successful submission and converted
// into an Order once checkout-complete succeeds.
type Checkout struct {
	ID                       string           `json:"id"`
	Email                    string           `json:"email"`
	Metadata                 []MetadataEntry  `json:"metadata"`
	ShippingAddress          *Address         `json:"shippingAddress"`
	BillingAddress           *Address         `json:"billingAddress"`
	TotalPrice               TaxedMoney       `json:"totalPrice"`
	AvailablePaymentGateways []PaymentGateway `json:"availablePaymentGateways"`
	Channel                  Channel          `json:"channel"`
	Lines                    []Line           `json:"lines"`
}

// Name returns the customer name stashed in the checkout metadata.
func (c *Checkout) Name() string {
	return MetadataValue(c.Metadata, MetaKeyName)
}

// HasPaymentGateway reports whether the gateway id is offered for this
// checkout.
func (c *Checkout) HasPaymentGateway(id string) bool {
	for _, gateway := range c.AvailablePaymentGateways {
		if gateway.ID == id {
			return true
		}
	}
	return false
}
