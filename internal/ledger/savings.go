package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pointbank/passbook/internal/model"
)

// WeeklyRate is the linear interest earned per week of a savings term.
var WeeklyRate = decimal.New(5, -2)

// Recommended bounds for a savings term. PreviewSavings does not enforce them.
const (
	MinWeeks = 1
	MaxWeeks = 10
)

// Rate returns weeks * WeeklyRate. It is not capped.
func Rate(weeks int) decimal.Decimal {
	return decimal.NewFromInt(int64(weeks)).Mul(WeeklyRate)
}

// RoundInterest rounds an interest amount to whole points, halves away from
// zero. This is the only rounding rule used for interest so that previews
// and settled contracts agree.
func RoundInterest(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// Interest returns the rounded interest for principal over weeks.
func Interest(principal int64, weeks int) int64 {
	return RoundInterest(decimal.NewFromInt(principal).Mul(Rate(weeks)))
}

// PreviewSavings derives rate, interest, payout and maturity for a prospective
// contract. Degenerate inputs (non-positive principal or weeks) still produce
// a consistent result so the preview can follow the user's typing.
func PreviewSavings(principal int64, weeks int, now time.Time) model.SavingsPreview {
	interest := Interest(principal, weeks)
	return model.SavingsPreview{
		Principal:      principal,
		Weeks:          weeks,
		Rate:           Rate(weeks),
		Interest:       interest,
		MaturityAmount: principal + interest,
		MaturesAt:      now.AddDate(0, 0, 7*weeks),
	}
}
