package loan

import "github.com/shopspring/decimal"

const (
	InterestRate          = 12 // percent per annum, fixed
	MinSuccessfulPayments = 3
	MinAmount             = 10000
	MaxAmount             = 50000
	MinTermMonths         = 6
	MaxTermMonths         = 60
)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// TotalRepayable is principal plus flat simple interest over the term:
// P + P * rate/100 * term/12.
func TotalRepayable(principal, annualRatePct decimal.Decimal, termMonths int) decimal.Decimal {
	interest := principal.Mul(annualRatePct).Mul(decimal.NewFromInt(int64(termMonths))).
		Div(hundred.Mul(monthsPerYear))
	return principal.Add(interest)
}

// CalculateEMI spreads TotalRepayable evenly over the term and rounds to a
// whole currency unit, half away from zero.
func CalculateEMI(principal, annualRatePct decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 {
		return decimal.Zero
	}
	return TotalRepayable(principal, annualRatePct, termMonths).
		Div(decimal.NewFromInt(int64(termMonths))).
		Round(0)
}

// AmortizedEMI is the reducing-balance installment
// P*r*(1+r)^n / ((1+r)^n - 1) with r the monthly rate, rounded to 2 places.
// Only quoted for comparison; loans are booked with CalculateEMI.
func AmortizedEMI(principal, annualRatePct decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(termMonths))
	r := annualRatePct.Div(hundred.Mul(monthsPerYear))
	if r.IsZero() {
		return principal.Div(n).Round(2)
	}
	growth := decimal.NewFromInt(1)
	onePlusR := growth.Add(r)
	for i := 0; i < termMonths; i++ {
		growth = growth.Mul(onePlusR).Round(20)
	}
	return principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1))).Round(2)
}

// Eligible is the auto-approval rule.
func Eligible(successfulPayments int64) bool {
	return successfulPayments >= MinSuccessfulPayments
}
