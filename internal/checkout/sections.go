package checkout

// Section is one collapsible step of the checkout flow.
type Section string

const (
	SectionContact  Section = "contact"
	SectionShipping Section = "shipping"
	SectionPayment  Section = "payment"
)

// SectionState is the render state of one section.
type SectionState string

const (
	StateCollapsed  SectionState = "collapsed"
	StateExpanded   SectionState = "expanded"
	StateSubmitting SectionState = "submitting"
)

// SectionView is the render state of a section exposed to the route
// surface.
type SectionView struct {
	Name      Section      `json:"name"`
	State     SectionState `json:"state"`
	Completed bool         `json:"completed"`
	Locked    bool         `json:"locked"`
	Overview  string       `json:"overview,omitempty"`
}

// Result is the outcome of a section submit. FieldErrors is keyed by
// the form's autofill keys; Message is a section-level banner; OrderID
// is set once payment completes the checkout.
type Result struct {
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Message     string            `json:"message,omitempty"`
	OrderID     string            `json:"order_id,omitempty"`
}

// OK reports whether the submit succeeded.
func (r *Result) OK() bool {
	return len(r.FieldErrors) == 0 && r.Message == ""
}

func fieldErrorResult(field, message string) *Result {
	return &Result{FieldErrors: map[string]string{field: message}}
}
