package lending

import (
	"math"

	"github.com/shopspring/decimal"
)

// ScheduleRow is one month of an amortization schedule. All monetary
// fields are rounded to cents.
type ScheduleRow struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}

// monthlyRate converts an annual percentage rate to a monthly fraction
func monthlyRate(annualRatePct decimal.Decimal) decimal.Decimal {
	return annualRatePct.Div(decimal.NewFromInt(1200))
}

// MonthlyPayment computes the fixed annuity payment for the given
// principal, annual rate (in percent) and term. The result is not
// rounded; callers round to cents for display and storage.
//
// For a zero rate the payment degenerates to principal/term.
func MonthlyPayment(principal, annualRatePct decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(termMonths))
	r := monthlyRate(annualRatePct)
	if r.IsZero() {
		return principal.Div(n)
	}

	// The annuity factor (1+r)^-n has no exact decimal form for
	// fractional rates; compute it in float and convert back.
	factor := math.Pow(1+r.InexactFloat64(), -float64(termMonths))
	denominator := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(factor))
	return principal.Mul(r).Div(denominator)
}

// Schedule computes the full amortization schedule. Interest for each
// month accrues on the running balance; the final month's principal
// component is forced to the remaining balance so the schedule
// terminates at exactly zero.
func Schedule(principal, annualRatePct decimal.Decimal, termMonths int) []ScheduleRow {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	r := monthlyRate(annualRatePct)
	payment := MonthlyPayment(principal, annualRatePct, termMonths)
	balance := principal

	rows := make([]ScheduleRow, 0, termMonths)
	for month := 1; month <= termMonths; month++ {
		interest := balance.Mul(r)
		principalComponent := payment.Sub(interest)
		if month == termMonths {
			principalComponent = balance
		}
		balance = balance.Sub(principalComponent)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		rows = append(rows, ScheduleRow{
			Month:     month,
			Payment:   payment.Round(2),
			Interest:  interest.Round(2),
			Principal: principalComponent.Round(2),
			Balance:   balance.Round(2),
		})
	}
	return rows
}
