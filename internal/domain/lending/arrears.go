package lending

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArrearsAssessment is the read-only result of comparing what a loan
// schedule expects to date against what has actually been repaid.
type ArrearsAssessment struct {
	MonthsElapsed  int
	ExpectedToDate decimal.Decimal
	Paid           decimal.Decimal
	Deficit        decimal.Decimal
	InArrears      bool
}

// MonthsElapsed counts whole calendar months between start and now
// by year/month arithmetic. Day-of-month is ignored.
func MonthsElapsed(start, now time.Time) int {
	months := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// AssessArrears evaluates a loan against its schedule as of now.
// The expected amount is the installment times elapsed months, capped
// at the full term. Loans without a start date are never in arrears.
func AssessArrears(loan *Loan, paid decimal.Decimal, now time.Time) ArrearsAssessment {
	if loan.StartDate == nil || !loan.IsActive() {
		return ArrearsAssessment{Paid: paid, ExpectedToDate: decimal.Zero, Deficit: decimal.Zero}
	}

	months := MonthsElapsed(*loan.StartDate, now)
	if months > loan.TermMonths {
		months = loan.TermMonths
	}

	expected := loan.Installment().Mul(decimal.NewFromInt(int64(months)))
	deficit := expected.Sub(paid)

	return ArrearsAssessment{
		MonthsElapsed:  months,
		ExpectedToDate: expected,
		Paid:           paid,
		Deficit:        deficit,
		InArrears:      deficit.GreaterThan(arrearsThreshold),
	}
}
