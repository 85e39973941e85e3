package model

import "time"

// Goal is an account's savings target. Amount 0 means no goal is set.
type Goal struct {
	Amount int64
	Date   time.Time
}

// IsSet reports whether the goal has a positive amount.
func (g Goal) IsSet() bool {
	return g.Amount > 0
}

// Projection combines the current balance with savings maturing by the goal date.
// Ratios are always within [0, 1].
type Projection struct {
	CurrentBalance  int64
	Bonus           int64
	ExpectedBalance int64
	CurrentRatio    float64
	ExpectedRatio   float64
}
