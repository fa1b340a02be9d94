package discount

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func storeWith(settings Settings, rules ...Rule) *RuleStore {
	return &RuleStore{Rules: rules, Settings: normalizeSettings(settings)}
}

func productRule(title string, discountType string, amount float64) Rule {
	return Rule{Title: title, On: DiscountOnProduct, Type: discountType, Amount: amount, Active: true}
}

func TestResolveProductPrice_SinglePercentRule(t *testing.T) {
	store := storeWith(Settings{}, productRule("Ten off", TypePercent, 10))

	got := ResolveProductPrice(100, Product{ID: 1}, store, false)
	assert.Equal(t, 90.0, got)
}

func TestResolveProductPrice_HighestPolicyPicksLargestDiscount(t *testing.T) {
	store := storeWith(Settings{ApplyRule: ApplyHighest},
		productRule("Flat twenty", TypeFlat, 20),
		productRule("Half off", TypePercent, 50),
	)

	got := ResolveProductPrice(100, Product{ID: 1}, store, false)
	assert.Equal(t, 50.0, got)
}

func TestResolveProductPrice_LowestPolicyPicksSmallestDiscount(t *testing.T) {
	store := storeWith(Settings{ApplyRule: ApplyLowest},
		productRule("Flat twenty", TypeFlat, 20),
		productRule("Half off", TypePercent, 50),
	)

	got := ResolveProductPrice(100, Product{ID: 1}, store, false)
	assert.Equal(t, 80.0, got)
}

func TestResolveProductPrice_ExclusiveRuleOverridesPolicy(t *testing.T) {
	// Exclusive amount (5) is smaller than the general candidates, and the
	// policy is "highest": the exclusive rule must still win outright.
	store := storeWith(Settings{ApplyRule: ApplyHighest, ExclusiveRule: "VIP"},
		productRule("Half off", TypePercent, 50),
		productRule("VIP", TypeFlat, 5),
	)

	got := ResolveProductPrice(100, Product{ID: 1}, store, false)
	assert.Equal(t, 95.0, got)
}

func TestResolveProductPrice_ExclusiveKeepsMaximumCandidate(t *testing.T) {
	// Two rules share the exclusive title; the larger candidate applies.
	store := storeWith(Settings{ExclusiveRule: "VIP"},
		productRule("VIP", TypeFlat, 5),
		productRule("VIP", TypePercent, 30),
	)

	got := ResolveProductPrice(100, Product{ID: 1}, store, false)
	assert.Equal(t, 70.0, got)
}

func TestResolveProductPrice_FlatDiscountClampedAtZero(t *testing.T) {
	store := storeWith(Settings{}, productRule("Big flat", TypeFlat, 500))

	got := ResolveProductPrice(100, Product{ID: 1}, store, false)
	assert.Equal(t, 0.0, got)
}

func TestResolveProductPrice_NeverExceedsInputPrice(t *testing.T) {
	store := storeWith(Settings{ApplyRule: ApplyHighest},
		productRule("A", TypePercent, 25),
		productRule("B", TypeFlat, 10),
	)

	for _, price := range []float64{0, 0.01, 1, 99.99, 1000} {
		got := ResolveProductPrice(price, Product{ID: 1}, store, false)
		assert.LessOrEqual(t, got, price)
		assert.GreaterOrEqual(t, got, 0.0)
	}
}

func TestResolveProductPrice_VisibilityGateReturnsPriceUnchanged(t *testing.T) {
	store := storeWith(Settings{ShowTo: ShowLoggedIn}, productRule("Half off", TypePercent, 50))

	assert.Equal(t, 100.0, ResolveProductPrice(100, Product{ID: 1}, store, false))
	assert.Equal(t, 50.0, ResolveProductPrice(100, Product{ID: 1}, store, true))
}

func TestResolveProductPrice_InactiveAndCartScopedRulesIgnored(t *testing.T) {
	inactive := productRule("Off duty", TypePercent, 50)
	inactive.Active = false
	cartScoped := Rule{Title: "Totals only", On: DiscountOnTotal, Type: TypePercent, Amount: 50, Active: true}

	store := storeWith(Settings{}, inactive, cartScoped)

	assert.Equal(t, 100.0, ResolveProductPrice(100, Product{ID: 1}, store, false))
}

func TestResolveProductPrice_NonMatchingScopeLeavesPrice(t *testing.T) {
	rule := productRule("Selected", TypePercent, 50)
	rule.IncProducts = []ProductRef{{ID: 99}}
	store := storeWith(Settings{}, rule)

	assert.Equal(t, 100.0, ResolveProductPrice(100, Product{ID: 1}, store, false))
}

func TestResolveProductPrice_ZeroAmountRuleStaysInBucket(t *testing.T) {
	// A matching zero-amount rule is a real candidate for the product
	// resolver: under the lowest policy it wins and yields no discount.
	store := storeWith(Settings{ApplyRule: ApplyLowest},
		productRule("Nothing off", TypeFlat, 0),
		productRule("Ten off", TypePercent, 10),
	)

	assert.Equal(t, 100.0, ResolveProductPrice(100, Product{ID: 1}, store, false))
}

func TestResolveProductPrice_Idempotent(t *testing.T) {
	store := storeWith(Settings{ApplyRule: ApplyHighest},
		productRule("A", TypePercent, 12.5),
		productRule("B", TypeFlat, 7),
	)
	product := Product{ID: 3, ParentID: 2, CategoryIDs: []uint{1}}

	first := ResolveProductPrice(79.99, product, store, true)
	second := ResolveProductPrice(79.99, product, store, true)
	assert.Equal(t, first, second)
}

func TestResolveProductPrice_NilStore(t *testing.T) {
	assert.Equal(t, 100.0, ResolveProductPrice(100, Product{ID: 1}, nil, false))
}

func TestResolveProductPrices_ResolvesEachEntryIndependently(t *testing.T) {
	rule := productRule("Ten off", TypePercent, 10)
	store := storeWith(Settings{}, rule)
	prices := map[string]float64{"small": 50, "large": 100}

	got := ResolveProductPrices(prices, Product{ID: 1}, store, false)

	assert.Equal(t, map[string]float64{"small": 45.0, "large": 90.0}, got)
	// Input map is untouched.
	assert.Equal(t, map[string]float64{"small": 50, "large": 100}, prices)
}

func TestResolveProductPrices_NilInput(t *testing.T) {
	store := storeWith(Settings{}, productRule("Ten off", TypePercent, 10))
	assert.Nil(t, ResolveProductPrices(nil, Product{ID: 1}, store, false))
}
