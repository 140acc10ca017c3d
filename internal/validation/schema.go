package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/damian-lis/checkout-flow/internal/address"
)

// RuleKind tags the per-field rule variants a schema is folded from.
type RuleKind int

const (
	RuleOptionalString RuleKind = iota
	RuleRequiredString
	RuleRequiredNonNegativeInt
	RulePatternString
)

// FieldRule is the validation rule attached to one form field.
type FieldRule struct {
	Kind    RuleKind
	Message string
	Pattern *regexp.Regexp
	MaxLen  int
	Email   bool
}

// Schema validates a flat form-value map keyed by autofill keys. It is
// built by folding an ordered list of (field, rule) pairs onto a base
// definition; later pairs override earlier ones for the same field.
type Schema struct {
	order []string
	rules map[string]FieldRule
}

func newSchema() *Schema {
	return &Schema{rules: make(map[string]FieldRule)}
}

func (s *Schema) set(field string, rule FieldRule) {
	if _, ok := s.rules[field]; !ok {
		s.order = append(s.order, field)
	}
	s.rules[field] = rule
}

// Rule returns the rule attached to field, if any.
func (s *Schema) Rule(field string) (FieldRule, bool) {
	rule, ok := s.rules[field]
	return rule, ok
}

// Validate checks values against the schema and returns a field→message
// map for every violated rule. An empty map means the values pass.
func (s *Schema) Validate(values map[string]string) map[string]string {
	fieldErrors := make(map[string]string)
	for _, field := range s.order {
		rule := s.rules[field]
		value := values[field]

		switch rule.Kind {
		case RuleOptionalString:
			if value != "" && rule.MaxLen > 0 && len(value) > rule.MaxLen {
				fieldErrors[field] = rule.Message
			}
		case RuleRequiredString:
			if value == "" {
				fieldErrors[field] = rule.Message
				continue
			}
			if rule.MaxLen > 0 && len(value) > rule.MaxLen {
				fieldErrors[field] = fmt.Sprintf("%s must be at most %d characters long", fieldDisplayName(field), rule.MaxLen)
				continue
			}
			if rule.Email && !emailPattern.MatchString(value) {
				fieldErrors[field] = "Invalid email address"
			}
		case RuleRequiredNonNegativeInt:
			if value == "" {
				fieldErrors[field] = "Number is required"
				continue
			}
			number, err := strconv.Atoi(value)
			if err != nil || number < 0 {
				fieldErrors[field] = rule.Message
			}
		case RulePatternString:
			if !rule.Pattern.MatchString(value) {
				fieldErrors[field] = rule.Message
			}
		}
	}
	return fieldErrors
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// mappedFieldsToDisplay holds the human names of fields whose remote
// name would read poorly in a message.
var mappedFieldsToDisplay = map[string]string{
	"city":           "City",
	"streetAddress1": "Street Address",
	"countryArea":    "Country Area",
	"firstName":      "First name",
	"lastName":       "Last name",
	"name":           "Name",
	"email":          "Email",
}

func fieldDisplayName(field string) string {
	if name, ok := mappedFieldsToDisplay[field]; ok {
		return name
	}
	return field
}

const incorrectNumberMessage = "Incorrect number"

// BuildSchema builds the address form schema for the given rule set. It
// is a pure function of rules: identical input produces an identical
// schema, which matters because it is rebuilt on every rule change.
//
// The base schema requires exactly country; everything else, including
// the payment fields validated elsewhere, is optional. A present rule
// set escalates firstName/lastName, every required field and, when
// streetAddress1 is required, the street number; allowed-but-not-
// required fields stay optional; the first postal-code matcher is
// applied with a message listing the example values.
func BuildSchema(rules *Rules) *Schema {
	schema := newSchema()

	// Payment fields carry their own validation in the card component.
	schema.set("cardNumber", FieldRule{Kind: RuleOptionalString})
	schema.set("expiryDate", FieldRule{Kind: RuleOptionalString})
	schema.set("cvc", FieldRule{Kind: RuleOptionalString})
	schema.set("paymentCountry", FieldRule{Kind: RuleOptionalString})

	schema.set(address.KeyGivenName, FieldRule{Kind: RuleOptionalString})
	schema.set(address.KeyFamilyName, FieldRule{Kind: RuleOptionalString})
	schema.set(address.KeyOrganization, FieldRule{Kind: RuleOptionalString})
	schema.set(address.KeyPostalCode, FieldRule{Kind: RuleOptionalString})
	schema.set(address.KeyStreetAddress, FieldRule{Kind: RuleOptionalString})
	schema.set(address.KeyStreetNumber, FieldRule{Kind: RuleOptionalString})
	schema.set(address.KeyCity, FieldRule{Kind: RuleOptionalString})
	schema.set(address.KeyCountry, FieldRule{Kind: RuleRequiredString, Message: "Country is required"})
	schema.set(address.KeyCountryArea, FieldRule{Kind: RuleOptionalString})

	if rules == nil {
		return schema
	}

	schema.set(address.KeyGivenName, FieldRule{Kind: RuleRequiredString, Message: "First name is required"})
	schema.set(address.KeyFamilyName, FieldRule{Kind: RuleRequiredString, Message: "Last name is required"})

	for _, field := range rules.RequiredFields {
		schema.set(address.ToAutocompleteKey(field), FieldRule{
			Kind:    RuleRequiredString,
			Message: fmt.Sprintf("%s is required", fieldDisplayName(field)),
		})
		if field == "streetAddress1" {
			schema.set(address.KeyStreetNumber, FieldRule{
				Kind:    RuleRequiredNonNegativeInt,
				Message: incorrectNumberMessage,
			})
		}
	}

	for _, field := range rules.AllowedFields {
		if containsField(rules.RequiredFields, field) {
			continue
		}
		schema.set(address.ToAutocompleteKey(field), FieldRule{Kind: RuleOptionalString})
	}

	if len(rules.PostalCodeMatchers) > 0 {
		pattern, err := regexp.Compile(rules.PostalCodeMatchers[0])
		if err == nil {
			schema.set(address.KeyPostalCode, FieldRule{
				Kind:    RulePatternString,
				Message: postalCodeMessage(rules.PostalCodeExamples),
				Pattern: pattern,
			})
		}
	}

	return schema
}

func postalCodeMessage(examples []string) string {
	var b strings.Builder
	b.WriteString("Invalid postal code. The following are examples: ")
	for i, example := range examples {
		b.WriteString(example)
		if i != len(examples)-1 {
			b.WriteString(", ")
		} else {
			b.WriteString(".")
		}
	}
	return b.String()
}

func containsField(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

// ContactSchema validates the contact section's name and email fields.
func ContactSchema() *Schema {
	schema := newSchema()
	schema.set("name", FieldRule{Kind: RuleRequiredString, Message: "Name is required", MaxLen: 255})
	schema.set("email", FieldRule{Kind: RuleRequiredString, Message: "Email is required", MaxLen: 255, Email: true})
	return schema
}
