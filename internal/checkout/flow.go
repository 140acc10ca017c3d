// Package checkout orchestrates the ordered checkout sections (contact,
// shipping, payment) against the remote commerce API. Each section
// collapses only after its remote mutations succeed; failures are
// forward-only, nothing is rolled back.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/damian-lis/checkout-flow/internal/address"
	"github.com/damian-lis/checkout-flow/internal/domain"
	"github.com/damian-lis/checkout-flow/internal/saleor"
	"github.com/damian-lis/checkout-flow/internal/validation"
	"github.com/damian-lis/checkout-flow/pkg/errors"
)

const (
	msgSomethingWentWrong = "Something went wrong, try again later"
	msgNoShippingMethods  = "There are no shipping methods to choose"

	selectedPaymentGatewayID = "mirumee.payments.dummy"
)

// PaymentGatewayNames maps gateway ids to their display names.
var PaymentGatewayNames = map[string]string{
	"mirumee.payments.dummy": "Mirumee Dummy Payment",
}

// Gateway is the remote mutation surface the flow drives. Every
// operation returns its typed payload with nested business-level errors;
// a Go error means a transport-level failure.
type Gateway interface {
	Checkout(ctx context.Context, id string) (*domain.Checkout, error)
	Order(ctx context.Context, id string) (*domain.Order, error)
	EmailUpdate(ctx context.Context, id, email string) (*saleor.CheckoutResult, error)
	MetadataUpdate(ctx context.Context, id string, input []domain.MetadataEntry) (*saleor.CheckoutResult, error)
	ShippingAddressUpdate(ctx context.Context, id string, addr saleor.AddressInput) (*saleor.ShippingAddressUpdateResult, error)
	DeliveryMethodUpdate(ctx context.Context, id, deliveryMethodID string) (*saleor.CheckoutResult, error)
	BillingAddressUpdate(ctx context.Context, id string, addr saleor.AddressInput) (*saleor.CheckoutResult, error)
	PaymentCreate(ctx context.Context, checkoutID string, input saleor.PaymentInput) (*saleor.PaymentCreateResult, error)
	CheckoutComplete(ctx context.Context, checkoutID string, metadata []domain.MetadataEntry) (*saleor.CheckoutCompleteResult, error)
}

// RulesResolver fetches per-country validation rules.
type RulesResolver interface {
	Resolve(ctx context.Context, countryCode, countryArea string) (*validation.Rules, error)
}

// Flow owns the in-memory checkout snapshot and the section states.
// The snapshot is replaced wholesale from the latest server response on
// each successful step; no partial field-level mutation happens.
type Flow struct {
	gateway Gateway
	rules   RulesResolver
	logger  *zap.Logger

	checkout     *domain.Checkout
	order        *domain.Order
	overviewOnly bool
	states       map[Section]SectionState
}

// NewFlow creates a new checkout flow
func NewFlow(gateway Gateway, rules RulesResolver, logger *zap.Logger) *Flow {
	return &Flow{
		gateway: gateway,
		rules:   rules,
		logger:  logger,
		states:  make(map[Section]SectionState),
	}
}

// Load fetches the checkout by id and derives the section states.
func (f *Flow) Load(ctx context.Context, checkoutID string) error {
	checkout, err := f.gateway.Checkout(ctx, checkoutID)
	if err != nil {
		return fmt.Errorf("failed to load checkout: %w", err)
	}
	if checkout == nil {
		return &errors.ErrNotFound{Entity: "checkout", ID: checkoutID}
	}
	f.checkout = checkout
	f.syncStates()
	return nil
}

// LoadFromOrder fetches the order by id and reconstructs the flow in
// permanent overview mode from the checkout snapshot stored in the
// order metadata.
func (f *Flow) LoadFromOrder(ctx context.Context, orderID string) error {
	order, err := f.gateway.Order(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return &errors.ErrNotFound{Entity: "order", ID: orderID}
	}

	snapshot, err := order.CheckoutSnapshot()
	if err != nil {
		return fmt.Errorf("failed to decode checkout snapshot: %w", err)
	}
	if snapshot == nil {
		snapshot = &domain.Checkout{}
	}

	f.order = order
	f.checkout = snapshot
	f.overviewOnly = true
	f.syncStates()
	return nil
}

// Checkout returns the current snapshot.
func (f *Flow) Checkout() *domain.Checkout {
	return f.checkout
}

// Order returns the order loaded via LoadFromOrder, if any.
func (f *Flow) Order() *domain.Order {
	return f.order
}

func (f *Flow) contactComplete() bool {
	return f.checkout.Email != ""
}

func (f *Flow) shippingComplete() bool {
	return f.checkout.ShippingAddress != nil
}

// syncStates derives the expand/collapse state of every section from
// the snapshot. Contact auto-expands while neither name nor email is
// known; each later section auto-expands exactly when its predecessor
// is complete and it is not.
func (f *Flow) syncStates() {
	if f.overviewOnly {
		f.states[SectionContact] = StateCollapsed
		f.states[SectionShipping] = StateCollapsed
		f.states[SectionPayment] = StateCollapsed
		return
	}

	f.states[SectionContact] = StateCollapsed
	if f.checkout.Name() == "" && f.checkout.Email == "" {
		f.states[SectionContact] = StateExpanded
	}

	f.states[SectionShipping] = StateCollapsed
	if f.contactComplete() && !f.shippingComplete() {
		f.states[SectionShipping] = StateExpanded
	}

	f.states[SectionPayment] = StateCollapsed
	if f.shippingComplete() {
		f.states[SectionPayment] = StateExpanded
	}
}

// locked reports whether a section cannot accept a submit: the flow is
// in overview mode or the direct predecessor is incomplete.
func (f *Flow) locked(section Section) bool {
	if f.overviewOnly {
		return true
	}
	switch section {
	case SectionShipping:
		return !f.contactComplete()
	case SectionPayment:
		return !f.shippingComplete()
	default:
		return false
	}
}

func (f *Flow) ensureEditable(section Section) error {
	if f.locked(section) {
		return &errors.ErrSectionLocked{Section: string(section)}
	}
	f.states[section] = StateSubmitting
	return nil
}

// Sections returns the render state of all sections in order.
func (f *Flow) Sections() []SectionView {
	countries := f.checkout.Channel.Countries

	contact := SectionView{
		Name:      SectionContact,
		State:     f.states[SectionContact],
		Completed: f.contactComplete(),
		Locked:    f.overviewOnly,
	}
	if name, email := f.checkout.Name(), f.checkout.Email; name != "" && email != "" {
		contact.Overview = fmt.Sprintf("%s, %s", name, email)
	}

	shipping := SectionView{
		Name:      SectionShipping,
		State:     f.states[SectionShipping],
		Completed: f.shippingComplete(),
		Locked:    f.locked(SectionShipping),
		Overview:  address.Display(f.checkout.ShippingAddress, countries),
	}

	payment := SectionView{
		Name:      SectionPayment,
		State:     f.states[SectionPayment],
		Completed: f.overviewOnly,
		Locked:    f.locked(SectionPayment),
		Overview:  address.Display(f.checkout.BillingAddress, countries),
	}

	return []SectionView{contact, shipping, payment}
}

// SubmitContact validates and stores the contact details. Resubmitting
// values identical to the stored ones issues zero mutations and still
// collapses the section.
func (f *Flow) SubmitContact(ctx context.Context, name, email string) (*Result, error) {
	if err := f.ensureEditable(SectionContact); err != nil {
		return nil, err
	}

	values := map[string]string{"name": name, "email": email}
	if fieldErrors := validation.ContactSchema().Validate(values); len(fieldErrors) > 0 {
		f.states[SectionContact] = StateExpanded
		return &Result{FieldErrors: fieldErrors}, nil
	}

	if name != f.checkout.Name() {
		res, err := f.gateway.MetadataUpdate(ctx, f.checkout.ID, []domain.MetadataEntry{
			{Key: domain.MetaKeyName, Value: name},
		})
		if err != nil {
			return f.transportFailure(SectionContact, err), nil
		}
		if result := f.businessFailure(SectionContact, res.Errors); result != nil {
			return result, nil
		}
		if res.Checkout != nil {
			f.checkout = res.Checkout
		}
	}

	if email != f.checkout.Email {
		res, err := f.gateway.EmailUpdate(ctx, f.checkout.ID, email)
		if err != nil {
			return f.transportFailure(SectionContact, err), nil
		}
		if result := f.businessFailure(SectionContact, res.Errors); result != nil {
			return result, nil
		}
		if res.Checkout != nil {
			f.checkout = res.Checkout
		}
	}

	f.syncStates()
	f.states[SectionContact] = StateCollapsed
	return &Result{}, nil
}

// SubmitShipping validates the address against the country rules,
// stores it and auto-selects the first shipping method the new address
// unlocks. The section collapses only after both mutations succeed.
func (f *Flow) SubmitShipping(ctx context.Context, values map[string]string) (*Result, error) {
	if err := f.ensureEditable(SectionShipping); err != nil {
		return nil, err
	}

	result, err := f.validateAddress(ctx, values)
	if err != nil {
		return f.transportFailure(SectionShipping, err), nil
	}
	if result != nil {
		f.states[SectionShipping] = StateExpanded
		return result, nil
	}

	res, err := f.gateway.ShippingAddressUpdate(ctx, f.checkout.ID, buildAddressInput(values))
	if err != nil {
		return f.transportFailure(SectionShipping, err), nil
	}
	if result := f.businessFailure(SectionShipping, res.Errors); result != nil {
		return result, nil
	}

	// The address stuck remotely, but without a shipping method the
	// step cannot proceed. Keep the section open; nothing is reverted.
	if len(res.ShippingMethods) == 0 {
		f.states[SectionShipping] = StateExpanded
		return &Result{Message: msgNoShippingMethods}, nil
	}

	deliveryRes, err := f.gateway.DeliveryMethodUpdate(ctx, f.checkout.ID, res.ShippingMethods[0].ID)
	if err != nil {
		return f.transportFailure(SectionShipping, err), nil
	}
	if result := f.businessFailure(SectionShipping, deliveryRes.Errors); result != nil {
		return result, nil
	}

	if deliveryRes.Checkout != nil {
		f.checkout = deliveryRes.Checkout
	} else if res.Checkout != nil {
		f.checkout = res.Checkout
	}
	f.syncStates()
	return &Result{}, nil
}

// PaymentForm carries the payment section's submitted values. Address
// holds the billing address form values when AddBillingAddress is set;
// otherwise billing reuses the shipping address unvalidated.
type PaymentForm struct {
	CardNumber        string
	ExpiryDate        string
	CVC               string
	PaymentCountry    string
	AddBillingAddress bool
	Address           map[string]string
}

// SubmitPayment runs the terminal mutation sequence: billing address,
// gateway gate, payment-create and checkout-complete. Any failure
// aborts the remaining calls; already-applied mutations stay applied.
func (f *Flow) SubmitPayment(ctx context.Context, form PaymentForm) (*Result, error) {
	if err := f.ensureEditable(SectionPayment); err != nil {
		return nil, err
	}

	if strings.TrimSpace(form.CardNumber) == "" {
		f.states[SectionPayment] = StateExpanded
		return fieldErrorResult("cardNumber", "Card number is required"), nil
	}

	billingValues := form.Address
	if form.AddBillingAddress {
		result, err := f.validateAddress(ctx, billingValues)
		if err != nil {
			return f.transportFailure(SectionPayment, err), nil
		}
		if result != nil {
			f.states[SectionPayment] = StateExpanded
			return result, nil
		}
	} else {
		billingValues = address.ToAutocompleteFormat(f.checkout.ShippingAddress)
	}

	billingRes, err := f.gateway.BillingAddressUpdate(ctx, f.checkout.ID, buildAddressInput(billingValues))
	if err != nil {
		return f.transportFailure(SectionPayment, err), nil
	}
	if result := f.businessFailure(SectionPayment, billingRes.Errors); result != nil {
		return result, nil
	}
	if billingRes.Checkout != nil {
		f.checkout = billingRes.Checkout
	}

	if !f.checkout.HasPaymentGateway(selectedPaymentGatewayID) {
		f.states[SectionPayment] = StateExpanded
		return &Result{Message: fmt.Sprintf("The %s is not available.", PaymentGatewayNames[selectedPaymentGatewayID])}, nil
	}

	paymentRes, err := f.gateway.PaymentCreate(ctx, f.checkout.ID, saleor.PaymentInput{
		Amount:  f.checkout.TotalPrice.Gross.Amount,
		Gateway: selectedPaymentGatewayID,
		Token:   strings.TrimSpace(form.CardNumber),
	})
	if err != nil {
		return f.transportFailure(SectionPayment, err), nil
	}
	if len(paymentRes.Errors) > 0 || paymentRes.PaymentID == "" {
		f.states[SectionPayment] = StateExpanded
		return &Result{Message: msgSomethingWentWrong}, nil
	}

	snapshot := paymentRes.Checkout
	if snapshot == nil {
		snapshot = f.checkout
	}
	snapshot.Channel.Countries = snapshotCountries(snapshot.ShippingAddress, snapshot.BillingAddress)

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return f.transportFailure(SectionPayment, err), nil
	}

	completeRes, err := f.gateway.CheckoutComplete(ctx, f.checkout.ID, []domain.MetadataEntry{
		{Key: domain.MetaKeyCheckoutData, Value: string(payload)},
	})
	if err != nil {
		return f.transportFailure(SectionPayment, err), nil
	}
	if len(completeRes.Errors) > 0 || completeRes.Order == nil {
		f.states[SectionPayment] = StateExpanded
		return &Result{Message: msgSomethingWentWrong}, nil
	}

	f.checkout = snapshot
	f.states[SectionPayment] = StateCollapsed
	return &Result{OrderID: completeRes.Order.ID}, nil
}

// validateAddress resolves the country rules for the submitted values
// and validates them. A nil result means the values pass.
func (f *Flow) validateAddress(ctx context.Context, values map[string]string) (*Result, error) {
	rules, err := f.rules.Resolve(ctx, values[address.KeyCountry], values[address.KeyCountryArea])
	if err != nil {
		return nil, err
	}
	schema := validation.BuildSchema(rules)
	if fieldErrors := schema.Validate(values); len(fieldErrors) > 0 {
		return &Result{FieldErrors: fieldErrors}, nil
	}
	return nil, nil
}

func (f *Flow) transportFailure(section Section, err error) *Result {
	f.logger.Error("remote call failed",
		zap.String("section", string(section)),
		zap.String("checkout_id", f.checkout.ID),
		zap.Error(err),
	)
	f.states[section] = StateExpanded
	return &Result{Message: msgSomethingWentWrong}
}

// businessFailure turns a payload error list into a field-level result,
// translating the remote field name into the form's autofill key. A nil
// return means the payload carried no errors.
func (f *Flow) businessFailure(section Section, fieldErrors []saleor.FieldError) *Result {
	if len(fieldErrors) == 0 {
		return nil
	}
	f.states[section] = StateExpanded
	first := fieldErrors[0]
	if first.Field == "" {
		return &Result{Message: first.Message}
	}
	return fieldErrorResult(address.ToAutocompleteKey(first.Field), first.Message)
}

// buildAddressInput converts autofill-keyed form values into the remote
// address payload, folding the street number and the countryArea copy
// into the metadata list. The native countryArea field and its metadata
// entry are always written together.
func buildAddressInput(values map[string]string) saleor.AddressInput {
	defaults := address.ToDefaultFormat(values)
	return saleor.AddressInput{
		FirstName:      defaults["firstName"],
		LastName:       defaults["lastName"],
		CompanyName:    defaults["companyName"],
		PostalCode:     defaults["postalCode"],
		StreetAddress1: defaults["streetAddress1"],
		City:           defaults["city"],
		Country:        defaults["country"],
		CountryArea:    defaults["countryArea"],
		Metadata: []domain.MetadataEntry{
			{Key: domain.MetaKeyStreetNumber, Value: defaults["streetNumber"]},
			{Key: domain.MetaKeyCountryArea, Value: defaults["countryArea"]},
		},
	}
}

// snapshotCountries rebuilds a minimal channel country list for the
// completion snapshot from the two address countries, since the
// post-payment checkout payload carries no channel data.
func snapshotCountries(shipping, billing *domain.Address) []domain.CountryDisplay {
	var countries []domain.CountryDisplay
	seen := make(map[string]bool)
	for _, addr := range []*domain.Address{shipping, billing} {
		if addr == nil || addr.Country.Code == "" || seen[addr.Country.Code] {
			continue
		}
		seen[addr.Country.Code] = true
		countries = append(countries, addr.Country)
	}
	return countries
}
