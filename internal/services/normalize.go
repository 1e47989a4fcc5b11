package services

import (
	"strings"

	"github.com/rgriss/aimanifesto/internal/models"
)

// Fixed value sets for enum-typed intelligence fields. Research responses
// are only stored when they normalize onto one of these members; anything
// else becomes null so a hallucinated enum value can never reach the
// schema.
var (
	CompanyStatusValues = []string{"private", "public", "acquired", "subsidiary", "open_source"}

	EmployeeCountRangeValues = []string{"1-10", "11-50", "51-200", "201-500", "501-1000", "1000-5000", "5000-10000", "10000+"}

	EstimatedUsersValues = []string{"< 10K", "10K-100K", "100K-1M", "1M-10M", "10M-50M", "50M-100M", "100M+"}

	TargetMarketValues = []string{"individual", "small_business", "mid_market", "enterprise", "developer", "creative_professional"}

	MarketPositionValues = []string{"market_leader", "major_player", "challenger", "niche_specialist", "emerging"}

	CustomerSentimentValues = []string{"very_positive", "positive", "mixed", "negative", "very_negative"}

	FundingStageValues = []string{"bootstrapped", "seed", "series_a", "series_b", "series_c+", "public", "profitable", "acquired"}

	EstimatedAnnualRevenueValues = []string{"< $1M", "$1M-$10M", "$10M-$50M", "$50M-$100M", "$100M-$500M", "$500M-$1B", "$1B+"}

	PopularityTierValues = []string{"mainstream", "well_known", "growing", "niche", "emerging"}
)

// NormalizeEnum maps a loosely-specified string onto a member of a fixed
// value set: lowercase, trim, spaces to underscores. Returns nil when the
// input is nil or the normalized form is not in the set.
func NormalizeEnum(value *string, validValues []string) *string {
	if value == nil {
		return nil
	}

	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(*value), " ", "_"))
	for _, v := range validValues {
		if normalized == v {
			return &normalized
		}
	}
	return nil
}

// NormalizePricingModel maps the researched pricing model onto the catalog
// enum. Known synonyms are folded in; anything unrecognized defaults to
// freemium.
func NormalizePricingModel(value string) models.PricingModel {
	normalized := strings.ToLower(strings.TrimSpace(value))

	switch models.PricingModel(normalized) {
	case models.PricingFree, models.PricingFreemium, models.PricingPaid, models.PricingEnterprise:
		return models.PricingModel(normalized)
	}

	switch normalized {
	case "open source", "opensource":
		return models.PricingFree
	case "subscription", "saas":
		return models.PricingPaid
	default:
		return models.PricingFreemium
	}
}

// normalizeEnumList filters a list down to its normalizable members.
func normalizeEnumList(values []string, validValues []string) models.StringList {
	var out models.StringList
	for _, v := range values {
		value := v
		if normalized := NormalizeEnum(&value, validValues); normalized != nil {
			out = append(out, *normalized)
		}
	}
	return out
}
