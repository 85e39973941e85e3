package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsStatus is the lifecycle state of a savings contract, owned by the service.
type SavingsStatus string

const (
	SavingsActive   SavingsStatus = "active"
	SavingsMatured  SavingsStatus = "matured"
	SavingsCanceled SavingsStatus = "canceled"
)

// ParseSavingsStatus maps a service status string onto a SavingsStatus.
// Unknown values are returned as-is so callers can still display them.
func ParseSavingsStatus(s string) SavingsStatus {
	switch SavingsStatus(s) {
	case SavingsActive, SavingsMatured, SavingsCanceled:
		return SavingsStatus(s)
	case "cancelled":
		return SavingsCanceled
	}
	return SavingsStatus(s)
}

// SavingsContract is a fixed-term savings subscription.
type SavingsContract struct {
	ID        string
	Principal int64
	Weeks     int
	Rate      decimal.Decimal
	Interest  int64
	MaturesAt time.Time // zero if unknown
	Status    SavingsStatus
}

// Active reports whether the contract is still running.
func (c SavingsContract) Active() bool {
	return c.Status == SavingsActive
}

// MaturityAmount is the payout at maturity.
func (c SavingsContract) MaturityAmount() int64 {
	return c.Principal + c.Interest
}

// SavingsPreview is the derived outcome of subscribing principal for a number of weeks.
type SavingsPreview struct {
	Principal      int64
	Weeks          int
	Rate           decimal.Decimal
	Interest       int64
	MaturityAmount int64
	MaturesAt      time.Time
}
