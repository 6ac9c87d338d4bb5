package calc

import "math"

// PresentValue discounts a nominal total paid in n equal installments at a
// periodic rate using the ordinary annuity factor:
//
//	pmt = total / n
//	pv  = pmt * ((1+rate)^n - 1) / (rate * (1+rate)^n)
//
// The total is returned unchanged when n <= 1, when total is zero, when rate
// is negative or not finite, or when the factor cannot be evaluated.
func PresentValue(total float64, n int, rate float64) float64 {
	if total == 0 || n <= 1 || !isFinite(total) || !isFinite(rate) || rate < 0 {
		return total
	}

	growth := math.Pow(1+rate, float64(n))
	denominator := rate * growth
	if denominator == 0 || !isFinite(denominator) {
		return total
	}

	pmt := total / float64(n)
	pv := pmt * (growth - 1) / denominator
	if !isFinite(pv) {
		return total
	}
	return Round2(pv)
}

// GeometricPresentValue sums pmt/(1+rate)^x for x in 1..n. It returns 0 for
// a zero payment, a non-positive count or a negative rate.
func GeometricPresentValue(pmt float64, n int, rate float64) float64 {
	if pmt == 0 || n <= 0 || rate < 0 || !isFinite(pmt) || !isFinite(rate) {
		return 0
	}
	total := 0.0
	for x := 1; x <= n; x++ {
		total += pmt / math.Pow(1+rate, float64(x))
	}
	return Round2(total)
}

// ProgressivePresentValue applies one percentage discount per installment:
// sum of pmt*(1 - c/100). It returns 0 unless exactly n coefficients are
// given.
func ProgressivePresentValue(pmt float64, n int, coefficients []float64) float64 {
	if pmt == 0 || n <= 0 || len(coefficients) == 0 || len(coefficients) != n || !isFinite(pmt) {
		return 0
	}
	total := 0.0
	for _, c := range coefficients {
		total += pmt * (1 - c/100)
	}
	return Round2(total)
}

type DiscountBreakdown struct {
	PresentValue     float64 `json:"present_value"`
	AbsoluteDiscount float64 `json:"absolute_discount"`
	PercentDiscount  float64 `json:"percent_discount"`
}

// Discount compares the geometric present value of an installment plan with
// the cash list price.
func Discount(listPrice, pmt float64, n int, rate float64) DiscountBreakdown {
	if listPrice <= 0 || !isFinite(listPrice) {
		return DiscountBreakdown{}
	}
	pv := GeometricPresentValue(pmt, n, rate)
	absolute := listPrice - pv
	return DiscountBreakdown{
		PresentValue:     Round2(pv),
		AbsoluteDiscount: Round2(absolute),
		PercentDiscount:  Round2(absolute / listPrice * 100),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
