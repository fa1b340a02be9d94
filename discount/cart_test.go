package discount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartRule(title string, discountType string, amount, minOrder float64) Rule {
	return Rule{Title: title, On: DiscountOnTotal, Type: discountType, Amount: amount, MinOrder: minOrder, Active: true}
}

func TestResolveCartDiscount_PercentOfSubtotal(t *testing.T) {
	store := storeWith(Settings{}, cartRule("Ten off totals", TypePercent, 10, 0))

	got, ok := ResolveCartDiscount(CartContext{Subtotal: 200}, store, false)
	require.True(t, ok)
	assert.Equal(t, CartDiscount{Title: "Ten off totals", Amount: 20}, got)
}

func TestResolveCartDiscount_MinOrderNotReached(t *testing.T) {
	store := storeWith(Settings{}, cartRule("Big spender", TypeFlat, 25, 250))

	_, ok := ResolveCartDiscount(CartContext{Subtotal: 200}, store, false)
	assert.False(t, ok)
}

func TestResolveCartDiscount_MinOrderBoundaryInclusive(t *testing.T) {
	store := storeWith(Settings{}, cartRule("Big spender", TypeFlat, 25, 250))

	got, ok := ResolveCartDiscount(CartContext{Subtotal: 250}, store, false)
	require.True(t, ok)
	assert.Equal(t, 25.0, got.Amount)
}

func TestResolveCartDiscount_ProductDiscountGuard(t *testing.T) {
	// A cart whose lines already carry product-level discounts never gets a
	// cart-level discount stacked on top.
	store := storeWith(Settings{}, cartRule("Ten off totals", TypePercent, 10, 0))

	_, ok := ResolveCartDiscount(CartContext{Subtotal: 500, HasProductDiscount: true}, store, false)
	assert.False(t, ok)
}

func TestResolveCartDiscount_VisibilityGate(t *testing.T) {
	store := storeWith(Settings{ShowTo: ShowLoggedIn}, cartRule("Members", TypeFlat, 15, 0))

	_, ok := ResolveCartDiscount(CartContext{Subtotal: 100}, store, false)
	assert.False(t, ok)

	got, ok := ResolveCartDiscount(CartContext{Subtotal: 100}, store, true)
	require.True(t, ok)
	assert.Equal(t, "Members", got.Title)
}

func TestResolveCartDiscount_HighestPolicy(t *testing.T) {
	store := storeWith(Settings{ApplyRule: ApplyHighest},
		cartRule("Small", TypeFlat, 10, 0),
		cartRule("Large", TypePercent, 20, 0),
	)

	got, ok := ResolveCartDiscount(CartContext{Subtotal: 100}, store, false)
	require.True(t, ok)
	assert.Equal(t, CartDiscount{Title: "Large", Amount: 20}, got)
}

func TestResolveCartDiscount_LowestPolicy(t *testing.T) {
	store := storeWith(Settings{ApplyRule: ApplyLowest},
		cartRule("Small", TypeFlat, 10, 0),
		cartRule("Large", TypePercent, 20, 0),
	)

	got, ok := ResolveCartDiscount(CartContext{Subtotal: 100}, store, false)
	require.True(t, ok)
	assert.Equal(t, CartDiscount{Title: "Small", Amount: 10}, got)
}

func TestResolveCartDiscount_TieBreakKeepsListOrder(t *testing.T) {
	// Equal extreme amounts: the first rule in list order wins under either
	// policy, independent of storage ordering.
	store := storeWith(Settings{ApplyRule: ApplyHighest},
		cartRule("First", TypeFlat, 20, 0),
		cartRule("Second", TypePercent, 20, 0),
	)

	got, ok := ResolveCartDiscount(CartContext{Subtotal: 100}, store, false)
	require.True(t, ok)
	assert.Equal(t, "First", got.Title)

	store.Settings.ApplyRule = ApplyLowest
	got, ok = ResolveCartDiscount(CartContext{Subtotal: 100}, store, false)
	require.True(t, ok)
	assert.Equal(t, "First", got.Title)
}

func TestResolveCartDiscount_ZeroAmountCandidatesSkipped(t *testing.T) {
	store := storeWith(Settings{ApplyRule: ApplyLowest},
		cartRule("Empty", TypeFlat, 0, 0),
		cartRule("Real", TypeFlat, 5, 0),
	)

	got, ok := ResolveCartDiscount(CartContext{Subtotal: 100}, store, false)
	require.True(t, ok)
	assert.Equal(t, "Real", got.Title)
}

func TestResolveCartDiscount_OnlyZeroCandidatesMeansNone(t *testing.T) {
	store := storeWith(Settings{}, cartRule("Empty", TypeFlat, 0, 0))

	_, ok := ResolveCartDiscount(CartContext{Subtotal: 100}, store, false)
	assert.False(t, ok)
}

func TestResolveCartDiscount_ExclusiveWinsOverLargerGeneral(t *testing.T) {
	store := storeWith(Settings{ApplyRule: ApplyHighest, ExclusiveRule: "Members only"},
		cartRule("Half off", TypePercent, 50, 0),
		cartRule("Members only", TypeFlat, 5, 0),
	)

	got, ok := ResolveCartDiscount(CartContext{Subtotal: 100}, store, false)
	require.True(t, ok)
	assert.Equal(t, CartDiscount{Title: "Members only", Amount: 5}, got)
}

func TestResolveCartDiscount_ExclusiveKeepsMaximumAcrossScan(t *testing.T) {
	// Two rules share the exclusive title; the scan continues and keeps the
	// larger candidate rather than stopping at the first hit.
	store := storeWith(Settings{ExclusiveRule: "Members only"},
		cartRule("Members only", TypeFlat, 5, 0),
		cartRule("Members only", TypePercent, 30, 0),
	)

	got, ok := ResolveCartDiscount(CartContext{Subtotal: 100}, store, false)
	require.True(t, ok)
	assert.Equal(t, 30.0, got.Amount)
}

func TestResolveCartDiscount_ExclusiveBelowMinOrderFallsThrough(t *testing.T) {
	store := storeWith(Settings{ExclusiveRule: "Members only"},
		cartRule("Members only", TypeFlat, 50, 1000),
		cartRule("Fallback", TypeFlat, 10, 0),
	)

	got, ok := ResolveCartDiscount(CartContext{Subtotal: 100}, store, false)
	require.True(t, ok)
	assert.Equal(t, "Fallback", got.Title)
}

func TestResolveCartDiscount_NoRules(t *testing.T) {
	_, ok := ResolveCartDiscount(CartContext{Subtotal: 100}, storeWith(Settings{}), false)
	assert.False(t, ok)

	_, ok = ResolveCartDiscount(CartContext{Subtotal: 100}, nil, false)
	assert.False(t, ok)
}
