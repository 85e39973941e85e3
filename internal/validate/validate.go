// Package validate checks user input before it reaches the calculator or the
// ledger service. The calculator itself never rejects input.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pointbank/passbook/internal/ledger"
	"github.com/pointbank/passbook/internal/model"
)

// Error describes a single rejected field.
type Error struct {
	Field   string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Join collapses errs into one error, or nil when there are none.
func Join(errs []Error) error {
	if len(errs) == 0 {
		return nil
	}
	wrapped := make([]error, len(errs))
	for i, e := range errs {
		wrapped[i] = e
	}
	return errors.Join(wrapped...)
}

// PIN requires exactly four ASCII digits.
func PIN(pin string) []Error {
	if len(pin) != 4 {
		return []Error{{Field: "pin", Message: "must be 4 digits (e.g. 0123)"}}
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return []Error{{Field: "pin", Message: "must be 4 digits (e.g. 0123)"}}
		}
	}
	return nil
}

// Name requires a non-blank account name.
func Name(name string) []Error {
	if strings.TrimSpace(name) == "" {
		return []Error{{Field: "name", Message: "is required"}}
	}
	return nil
}

// Transaction checks a passbook entry against the current balance.
func Transaction(memo string, deposit, withdraw, balance int64) []Error {
	var errs []Error

	if strings.TrimSpace(memo) == "" {
		errs = append(errs, Error{Field: "memo", Message: "is required"})
	}
	if deposit < 0 {
		errs = append(errs, Error{Field: "deposit", Message: "must not be negative"})
	}
	if withdraw < 0 {
		errs = append(errs, Error{Field: "withdraw", Message: "must not be negative"})
	}

	// Exactly one side per entry.
	switch {
	case deposit != 0 && withdraw != 0:
		errs = append(errs, Error{Field: "amount", Message: "enter either a deposit or a withdrawal, not both"})
	case deposit == 0 && withdraw == 0:
		errs = append(errs, Error{Field: "amount", Message: "enter a deposit or a withdrawal"})
	}

	if withdraw > 0 && withdraw > balance {
		errs = append(errs, Error{
			Field:   "withdraw",
			Message: fmt.Sprintf("%d exceeds balance %d", withdraw, balance),
		})
	}
	return errs
}

// Savings checks a subscription request.
func Savings(principal int64, weeks int, balance int64) []Error {
	var errs []Error
	if principal <= 0 {
		errs = append(errs, Error{Field: "principal", Message: "must be positive"})
	} else if principal > balance {
		errs = append(errs, Error{
			Field:   "principal",
			Message: fmt.Sprintf("%d exceeds balance %d", principal, balance),
		})
	}
	if weeks < ledger.MinWeeks || weeks > ledger.MaxWeeks {
		errs = append(errs, Error{
			Field:   "weeks",
			Message: fmt.Sprintf("must be between %d and %d", ledger.MinWeeks, ledger.MaxWeeks),
		})
	}
	return errs
}

// Goal checks a goal amount and date. today is the caller's current date.
func Goal(amount int64, date, today time.Time) []Error {
	var errs []Error
	if amount <= 0 {
		errs = append(errs, Error{Field: "amount", Message: "must be positive"})
	}
	if date.IsZero() {
		errs = append(errs, Error{Field: "date", Message: "is required"})
	} else {
		dy, dm, dd := date.Date()
		ty, tm, td := today.In(date.Location()).Date()
		if time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC).Before(time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)) {
			errs = append(errs, Error{Field: "date", Message: "must not be in the past"})
		}
	}
	return errs
}

// Template checks an admin quick-entry preset.
func Template(label string, kind model.TemplateKind, amount int64) []Error {
	var errs []Error
	if strings.TrimSpace(label) == "" {
		errs = append(errs, Error{Field: "label", Message: "is required"})
	}
	if kind != model.TemplateDeposit && kind != model.TemplateWithdraw {
		errs = append(errs, Error{Field: "kind", Message: fmt.Sprintf("must be %q or %q", model.TemplateDeposit, model.TemplateWithdraw)})
	}
	if amount <= 0 {
		errs = append(errs, Error{Field: "amount", Message: "must be positive"})
	}
	return errs
}
