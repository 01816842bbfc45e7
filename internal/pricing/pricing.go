package pricing

import "github.com/shopspring/decimal"

// Delivery charge tiers. Orders at or above the free-delivery threshold
// ship for nothing; everything below is charged a percentage of the items
// total.
var (
	lowTierLimit = decimal.NewFromInt(100)
	midTierLimit = decimal.NewFromInt(500)
	lowTierRate  = decimal.NewFromFloat(0.15)
	midTierRate  = decimal.NewFromFloat(0.10)
)

// Round2 rounds a monetary value to two decimal places. Every intermediate
// amount (line total, charge, grand total) goes through this so stored and
// displayed values never drift apart.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// LineTotal computes price x quantity rounded to two decimals.
func LineTotal(price float64, quantity int) float64 {
	f, _ := decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		Float64()
	return f
}

// DeliveryCharge returns the shipping charge for the given items total:
// 15% under 100, 10% from 100 up to (but excluding) 500, free at 500 and
// above. The result is rounded to two decimals.
func DeliveryCharge(itemsTotal float64) float64 {
	t := decimal.NewFromFloat(itemsTotal)

	var charge decimal.Decimal
	switch {
	case t.LessThan(lowTierLimit):
		charge = t.Mul(lowTierRate)
	case t.LessThan(midTierLimit):
		charge = t.Mul(midTierRate)
	default:
		charge = decimal.Zero
	}

	f, _ := charge.Round(2).Float64()
	return f
}

// OrderTotal returns the grand total for an order: the rounded items total
// plus its delivery charge, rounded again.
func OrderTotal(itemsTotal float64) (charge float64, total float64) {
	items := decimal.NewFromFloat(Round2(itemsTotal))
	charge = DeliveryCharge(itemsTotal)

	f, _ := items.Add(decimal.NewFromFloat(charge)).Round(2).Float64()
	return charge, f
}

// SumLineTotals adds up already-rounded line totals and rounds the result.
func SumLineTotals(totals []float64) float64 {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(decimal.NewFromFloat(t))
	}
	f, _ := sum.Round(2).Float64()
	return f
}
