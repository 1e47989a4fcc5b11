package services

import (
	"testing"

	"github.com/rgriss/aimanifesto/internal/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestNormalizeEnum(t *testing.T) {
	tests := []struct {
		name     string
		value    *string
		set      []string
		expected *string
	}{
		{
			name:     "exact member passes through",
			value:    strPtr("private"),
			set:      CompanyStatusValues,
			expected: strPtr("private"),
		},
		{
			name:     "case and spacing folded",
			value:    strPtr("  Market Leader "),
			set:      MarketPositionValues,
			expected: strPtr("market_leader"),
		},
		{
			name:     "open source matches via underscore",
			value:    strPtr("Open Source"),
			set:      CompanyStatusValues,
			expected: strPtr("open_source"),
		},
		{
			name:     "unknown value becomes nil",
			value:    strPtr("banana"),
			set:      CompanyStatusValues,
			expected: nil,
		},
		{
			name:     "nil input stays nil",
			value:    nil,
			set:      CompanyStatusValues,
			expected: nil,
		},
		{
			// normalization lowercases and underscores the input, so set
			// members written with spaces or uppercase are unreachable
			name:     "set members with spaces never match",
			value:    strPtr("< 10K"),
			set:      EstimatedUsersValues,
			expected: nil,
		},
		{
			name:     "revenue bands never match either",
			value:    strPtr("$1M-$10M"),
			set:      EstimatedAnnualRevenueValues,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEnum(tt.value, tt.set)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			assert.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestNormalizePricingModel(t *testing.T) {
	tests := []struct {
		input    string
		expected models.PricingModel
	}{
		{"free", models.PricingFree},
		{"Freemium", models.PricingFreemium},
		{"PAID", models.PricingPaid},
		{"enterprise", models.PricingEnterprise},
		{"Open Source", models.PricingFree},
		{"opensource", models.PricingFree},
		{"subscription", models.PricingPaid},
		{"SaaS", models.PricingPaid},
		{"", models.PricingFreemium},
		{"pay as you go", models.PricingFreemium},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizePricingModel(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeEnumList(t *testing.T) {
	got := normalizeEnumList([]string{"Individual", "enterprise", "governments"}, TargetMarketValues)
	assert.Equal(t, models.StringList{"individual", "enterprise"}, got)

	assert.Nil(t, normalizeEnumList(nil, TargetMarketValues))
}
