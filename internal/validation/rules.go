// Package validation resolves per-country address validation rules from
// the remote API and builds field-validation schemas from them.
package validation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/damian-lis/checkout-flow/internal/saleor"
)

// CountryAreaChoice is one selectable country subdivision.
type CountryAreaChoice struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Rules is the resolved per-country rule set. RequiredFields is a
// subset of AllowedFields by contract of the remote rule source;
// PostalCodeMatchers may be empty.
type Rules struct {
	RequiredFields     []string
	AllowedFields      []string
	PostalCodeMatchers []string
	PostalCodeExamples []string
	CountryAreaChoices []CountryAreaChoice
}

type rulesClient interface {
	AddressValidationRules(ctx context.Context, countryCode, countryArea string) (*saleor.ValidationRules, error)
}

// Resolver fetches validation rules for a country, optionally narrowed
// by a subdivision. Rules are fetched on every country or subdivision
// change and never cached across sections.
type Resolver struct {
	client rulesClient
	logger *zap.Logger
}

// NewResolver creates a new rule resolver
func NewResolver(client rulesClient, logger *zap.Logger) *Resolver {
	return &Resolver{
		client: client,
		logger: logger,
	}
}

// Resolve fetches the rule set for countryCode. A nil rule set with a
// nil error means the remote has no rules for the country; callers fall
// back to the base schema.
func (r *Resolver) Resolve(ctx context.Context, countryCode, countryArea string) (*Rules, error) {
	if countryCode == "" {
		return nil, nil
	}

	raw, err := r.client.AddressValidationRules(ctx, countryCode, countryArea)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch validation rules for %s: %w", countryCode, err)
	}
	if raw == nil {
		r.logger.Debug("no validation rules for country", zap.String("country", countryCode))
		return nil, nil
	}

	rules := &Rules{
		RequiredFields:     raw.RequiredFields,
		AllowedFields:      raw.AllowedFields,
		PostalCodeMatchers: raw.PostalCodeMatchers,
		PostalCodeExamples: raw.PostalCodeExamples,
	}
	for _, choice := range raw.CountryAreaChoices {
		rules.CountryAreaChoices = append(rules.CountryAreaChoices, CountryAreaChoice{
			Code:  choice.Raw,
			Label: choice.Verbose,
		})
	}
	return rules, nil
}
