// Package discount implements the rule-matching and discount-resolution
// engine. It is a pure library: every function is a deterministic function of
// its inputs, holds no state between calls, and performs no I/O, so callers
// may evaluate many products or carts concurrently against the same RuleStore
// snapshot.
package discount

// Scope a rule applies to.
const (
	DiscountOnProduct = "product"
	DiscountOnTotal   = "total"
)

// How a rule's amount is interpreted.
const (
	TypePercent = "percent"
	TypeFlat    = "flat"
)

// Tie-break policy when several non-exclusive rules match.
const (
	ApplyLowest  = "lowest"
	ApplyHighest = "highest"
)

// Who discounts are shown to.
const (
	ShowAll      = "all"
	ShowLoggedIn = "logged_in"
)

// ProductRef identifies a product inside a rule's include/exclude list.
// ParentID is informational (it records which parent a variation was picked
// under); matching compares the listed ID against both the evaluated
// product's own id and its parent id.
type ProductRef struct {
	ID       uint
	ParentID uint
}

// Rule is one validated discount definition. Instances are built by
// NewRuleStore from persisted records and are immutable afterwards.
type Rule struct {
	Title         string
	On            string // DiscountOnProduct or DiscountOnTotal
	Type          string // TypePercent or TypeFlat
	Amount        float64
	Active        bool
	MinOrder      float64 // only meaningful when On == DiscountOnTotal
	IncProducts   []ProductRef
	ExProducts    []ProductRef
	IncCategories []uint
	ExCategories  []uint
}

// Settings is the store-wide resolution policy.
type Settings struct {
	ApplyRule     string // ApplyLowest or ApplyHighest
	ShowTo        string // ShowAll or ShowLoggedIn
	ExclusiveRule string // rule title that overrides all others when it matches
	FromText      string // prefix for price-range display, e.g. "From"
}

// RuleStore is an immutable snapshot of the configured rules plus settings.
// Rule order is significant: tie-breaks between equal candidate amounts keep
// the first rule in list order.
type RuleStore struct {
	Rules    []Rule
	Settings Settings
}

// Product is the read-only view of a catalog item the matcher needs.
type Product struct {
	ID          uint
	ParentID    uint // 0 when the product is not a variation
	CategoryIDs []uint
}

// CartContext describes the order the cart resolver evaluates.
// HasProductDiscount must be true when any line item already carries a
// product-level discount; the resolver then declines to stack a cart-level
// discount on top.
type CartContext struct {
	Subtotal           float64
	HasProductDiscount bool
}

// CartDiscount is the winning cart-level discount. The caller applies it as a
// negative fee against the order.
type CartDiscount struct {
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
}
