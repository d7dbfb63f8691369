package variants

import "github.com/shopspring/decimal"

func validatePricing(price decimal.Decimal, compare, cost *decimal.Decimal, quantity int) map[string]string {
	fields := map[string]string{}
	if price.IsNegative() {
		fields["price"] = "must not be negative"
	}
	if compare != nil && compare.IsNegative() {
		fields["compare_price"] = "must not be negative"
	}
	if cost != nil && cost.IsNegative() {
		fields["cost_price"] = "must not be negative"
	}
	if quantity < 0 {
		fields["quantity"] = "must not be negative"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
