package discount

import (
	"strconv"
	"strings"
)

// RuleRecord is the loosely-typed persisted form of a rule, as stored by the
// admin settings API. Amounts are strings there; NewRuleStore normalizes them
// into validated Rule values.
type RuleRecord struct {
	Title         string
	DiscountOn    string
	DiscountType  string
	Amount        string
	MinOrder      string
	IsActive      string // "yes" or "no"
	IncProducts   []ProductRef
	ExProducts    []ProductRef
	IncCategories []uint
	ExCategories  []uint
}

// NewRuleStore builds an immutable snapshot from persisted records. Malformed
// records are skipped rather than reported: a single bad rule must never block
// pricing for the rest of the catalog. Record order is preserved.
func NewRuleStore(records []RuleRecord, settings Settings) *RuleStore {
	store := &RuleStore{
		Rules:    make([]Rule, 0, len(records)),
		Settings: normalizeSettings(settings),
	}

	for _, rec := range records {
		rule, ok := normalizeRule(rec)
		if !ok {
			continue
		}
		store.Rules = append(store.Rules, rule)
	}

	return store
}

// normalizeRule validates one record. Records with an empty title or an
// unknown scope/type can never match anything and are dropped here, so the
// resolvers only ever see well-formed rules.
func normalizeRule(rec RuleRecord) (Rule, bool) {
	title := strings.TrimSpace(rec.Title)
	if title == "" {
		return Rule{}, false
	}
	if rec.DiscountOn != DiscountOnProduct && rec.DiscountOn != DiscountOnTotal {
		return Rule{}, false
	}
	if rec.DiscountType != TypePercent && rec.DiscountType != TypeFlat {
		return Rule{}, false
	}

	return Rule{
		Title:         title,
		On:            rec.DiscountOn,
		Type:          rec.DiscountType,
		Amount:        parseAmount(rec.Amount),
		Active:        rec.IsActive == "yes",
		MinOrder:      parseAmount(rec.MinOrder),
		IncProducts:   rec.IncProducts,
		ExProducts:    rec.ExProducts,
		IncCategories: rec.IncCategories,
		ExCategories:  rec.ExCategories,
	}, true
}

// parseAmount reads a decimal field, defaulting to zero on empty or invalid
// input. Negative values are clamped to zero; a discount is never a surcharge.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func normalizeSettings(s Settings) Settings {
	if s.ApplyRule != ApplyLowest && s.ApplyRule != ApplyHighest {
		s.ApplyRule = ApplyHighest
	}
	if s.ShowTo != ShowAll && s.ShowTo != ShowLoggedIn {
		s.ShowTo = ShowAll
	}
	if s.FromText == "" {
		s.FromText = "From"
	}
	return s
}
