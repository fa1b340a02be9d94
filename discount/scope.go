package discount

// RuleMatchesProduct reports whether a rule's scope filters cover the given
// product. Exclusion lists always win: a product excluded by id or category is
// never re-included via an overlapping inclusion list. When both inclusion
// lists are empty the rule matches everything not excluded.
func RuleMatchesProduct(rule Rule, product Product) bool {
	if len(rule.ExProducts) > 0 && listsProduct(rule.ExProducts, product) {
		return false
	}
	if len(rule.ExCategories) > 0 && intersects(rule.ExCategories, product.CategoryIDs) {
		return false
	}

	if len(rule.IncProducts) == 0 && len(rule.IncCategories) == 0 {
		return true
	}
	if len(rule.IncProducts) > 0 && listsProduct(rule.IncProducts, product) {
		return true
	}
	if len(rule.IncCategories) > 0 && intersects(rule.IncCategories, product.CategoryIDs) {
		return true
	}

	return false
}

// listsProduct reports whether any entry targets the product itself or its
// parent, so a rule listing a variable product covers all its variations.
func listsProduct(refs []ProductRef, product Product) bool {
	for _, ref := range refs {
		if ref.ID == product.ID {
			return true
		}
		if product.ParentID != 0 && ref.ID == product.ParentID {
			return true
		}
	}
	return false
}

func intersects(a, b []uint) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
