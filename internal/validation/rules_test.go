package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/damian-lis/checkout-flow/internal/saleor"
)

type fakeRulesClient struct {
	rules       *saleor.ValidationRules
	err         error
	lastCountry string
	lastArea    string
	calls       int
}

func (f *fakeRulesClient) AddressValidationRules(ctx context.Context, countryCode, countryArea string) (*saleor.ValidationRules, error) {
	f.calls++
	f.lastCountry = countryCode
	f.lastArea = countryArea
	return f.rules, f.err
}

func TestResolverResolve(t *testing.T) {
	client := &fakeRulesClient{
		rules: &saleor.ValidationRules{
			RequiredFields:     []string{"city"},
			AllowedFields:      []string{"city", "companyName"},
			PostalCodeMatchers: []string{`^\d{5}$`},
			PostalCodeExamples: []string{"12345"},
			CountryAreaChoices: []saleor.CountryAreaChoice{
				{Raw: "DS", Verbose: "Dolnoslaskie"},
			},
		},
	}
	resolver := NewResolver(client, zap.NewNop())

	rules, err := resolver.Resolve(context.Background(), "PL", "DS")
	require.NoError(t, err)
	require.NotNil(t, rules)

	assert.Equal(t, "PL", client.lastCountry)
	assert.Equal(t, "DS", client.lastArea)
	assert.Equal(t, []string{"city"}, rules.RequiredFields)
	assert.Equal(t, []string{"city", "companyName"}, rules.AllowedFields)
	assert.Equal(t, []CountryAreaChoice{{Code: "DS", Label: "Dolnoslaskie"}}, rules.CountryAreaChoices)
}

func TestResolverNoRulesForCountry(t *testing.T) {
	resolver := NewResolver(&fakeRulesClient{}, zap.NewNop())

	rules, err := resolver.Resolve(context.Background(), "XX", "")
	require.NoError(t, err)
	assert.Nil(t, rules)
}

func TestResolverEmptyCountrySkipsFetch(t *testing.T) {
	client := &fakeRulesClient{}
	resolver := NewResolver(client, zap.NewNop())

	rules, err := resolver.Resolve(context.Background(), "", "")
	require.NoError(t, err)
	assert.Nil(t, rules)
	assert.Zero(t, client.calls)
}

func TestResolverTransportError(t *testing.T) {
	client := &fakeRulesClient{err: errors.New("boom")}
	resolver := NewResolver(client, zap.NewNop())

	rules, err := resolver.Resolve(context.Background(), "PL", "")
	assert.Error(t, err)
	assert.Nil(t, rules)
}
