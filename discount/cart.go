package discount

// ResolveCartDiscount applies the subtotal-scoped rules of the store to an
// order and returns the winning discount, or ok=false when nothing qualifies.
//
// The ctx.HasProductDiscount guard is a hard precondition: an order whose line
// items already carry product-level discounts never receives a cart-level
// discount on top. Rules below their min_order threshold and candidates that
// compute to a zero or negative amount are skipped. Exclusive handling mirrors
// ResolveProductPrice: the largest matching exclusive candidate wins outright.
func ResolveCartDiscount(ctx CartContext, store *RuleStore, isAuthenticated bool) (CartDiscount, bool) {
	if store == nil || ctx.HasProductDiscount {
		return CartDiscount{}, false
	}
	if !store.Settings.visible(isAuthenticated) {
		return CartDiscount{}, false
	}

	var (
		general        []CartDiscount
		exclusive      CartDiscount
		exclusiveFound bool
	)

	for _, rule := range store.Rules {
		if !rule.Active || rule.On != DiscountOnTotal {
			continue
		}
		if ctx.Subtotal < rule.MinOrder {
			continue
		}

		amount := candidateAmount(rule, ctx.Subtotal)
		if amount <= 0 {
			continue
		}

		if store.Settings.ExclusiveRule != "" && rule.Title == store.Settings.ExclusiveRule {
			if !exclusiveFound || amount > exclusive.Amount {
				exclusive = CartDiscount{Title: rule.Title, Amount: amount}
				exclusiveFound = true
			}
			continue
		}
		general = append(general, CartDiscount{Title: rule.Title, Amount: amount})
	}

	if exclusiveFound {
		return exclusive, true
	}
	if len(general) == 0 {
		return CartDiscount{}, false
	}

	// Strict comparisons keep the first occurrence, so equal amounts resolve
	// by rule-list order regardless of how the rules were stored.
	best := general[0]
	for _, cand := range general[1:] {
		if store.Settings.ApplyRule == ApplyLowest {
			if cand.Amount < best.Amount {
				best = cand
			}
		} else if cand.Amount > best.Amount {
			best = cand
		}
	}
	return best, true
}
