package ledger

import (
	"time"

	"github.com/pointbank/passbook/internal/model"
)

// ProjectGoal combines the current balance with the payouts of active
// contracts maturing on or before the goal date. Contracts that are not
// active or whose maturity is unknown contribute nothing.
func ProjectGoal(currentBalance int64, goal model.Goal, savings []model.SavingsContract) model.Projection {
	bonus := MaturingBonus(goal.Date, savings)
	expected := currentBalance + bonus
	return model.Projection{
		CurrentBalance:  currentBalance,
		Bonus:           bonus,
		ExpectedBalance: expected,
		CurrentRatio:    Ratio(currentBalance, goal.Amount),
		ExpectedRatio:   Ratio(expected, goal.Amount),
	}
}

// MaturingBonus sums principal + interest of active contracts whose maturity
// calendar date is on or before by's calendar date.
func MaturingBonus(by time.Time, savings []model.SavingsContract) int64 {
	if by.IsZero() {
		return 0
	}
	var bonus int64
	for _, c := range savings {
		if !c.Active() || c.MaturesAt.IsZero() {
			continue
		}
		if onOrBefore(c.MaturesAt, by) {
			bonus += c.MaturityAmount()
		}
	}
	return bonus
}

// Ratio returns amount/goal clamped to [0, 1], or 0 when goal <= 0.
func Ratio(amount, goal int64) float64 {
	if goal <= 0 {
		return 0
	}
	r := float64(amount) / float64(goal)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

// onOrBefore compares calendar dates, reading t in the location of day.
func onOrBefore(t, day time.Time) bool {
	ty, tm, td := t.In(day.Location()).Date()
	dy, dm, dd := day.Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return !a.After(b)
}
