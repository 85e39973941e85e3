// Package passbook assembles what a user sees for one account: the running
// ledger, savings, and goal projection. All per-user state lives in a Session
// owned by the caller.
package passbook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pointbank/passbook/internal/client"
	"github.com/pointbank/passbook/internal/ledger"
	"github.com/pointbank/passbook/internal/model"
	"github.com/pointbank/passbook/internal/validate"
)

// Backend is the subset of the ledger service the passbook needs.
type Backend interface {
	Transactions(ctx context.Context, name, pin string) ([]model.Transaction, error)
	AddTransaction(ctx context.Context, name, pin, memo string, deposit, withdraw int64) error
	DeleteTransaction(ctx context.Context, name, pin, id string) error
	Savings(ctx context.Context, name, pin string) ([]model.SavingsContract, error)
	CreateSavings(ctx context.Context, name, pin string, principal int64, weeks int) error
	CancelSavings(ctx context.Context, name, pin, id string) error
	Goal(ctx context.Context, name, pin string) (model.Goal, error)
	SetGoal(ctx context.Context, name, pin string, goal model.Goal) error
	Templates(ctx context.Context) ([]model.Template, error)
}

// Session is the caller-owned context for one user interaction. Now is fixed
// for the whole interaction so repeated computations agree.
type Session struct {
	Account string
	PIN     string
	Now     time.Time
}

// Check validates the session credentials.
func (s Session) Check() error {
	errs := validate.Name(s.Account)
	errs = append(errs, validate.PIN(s.PIN)...)
	return validate.Join(errs)
}

// Snapshot is one consistent view of an account.
type Snapshot struct {
	Account    string
	Rows       []model.LedgerRow
	Balance    int64
	Savings    []model.SavingsContract
	Goal       model.Goal
	Projection model.Projection
}

// ActiveSavings returns the contracts still running.
func (s Snapshot) ActiveSavings() []model.SavingsContract {
	var out []model.SavingsContract
	for _, c := range s.Savings {
		if c.Active() {
			out = append(out, c)
		}
	}
	return out
}

// Service ties the backend to the calculator.
type Service struct {
	backend Backend
}

// NewService creates a passbook Service.
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// View fetches transactions, savings and goal and derives the snapshot.
// A missing goal is not an error.
func (s *Service) View(ctx context.Context, sess Session) (Snapshot, error) {
	if err := sess.Check(); err != nil {
		return Snapshot{}, err
	}

	txs, err := s.backend.Transactions(ctx, sess.Account, sess.PIN)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading transactions: %w", err)
	}
	savings, err := s.backend.Savings(ctx, sess.Account, sess.PIN)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading savings: %w", err)
	}
	goal, err := s.backend.Goal(ctx, sess.Account, sess.PIN)
	if err != nil && !errors.Is(err, client.ErrNoGoal) {
		return Snapshot{}, fmt.Errorf("loading goal: %w", err)
	}

	rows := ledger.Compute(txs)
	balance := ledger.CurrentBalance(rows)
	return Snapshot{
		Account:    sess.Account,
		Rows:       rows,
		Balance:    balance,
		Savings:    savings,
		Goal:       goal,
		Projection: ledger.ProjectGoal(balance, goal, savings),
	}, nil
}

// Balance returns the account's current balance.
func (s *Service) Balance(ctx context.Context, sess Session) (int64, error) {
	txs, err := s.backend.Transactions(ctx, sess.Account, sess.PIN)
	if err != nil {
		return 0, fmt.Errorf("loading transactions: %w", err)
	}
	return ledger.CurrentBalance(ledger.Compute(txs)), nil
}

// Entry is a deposit or withdrawal to record.
type Entry struct {
	Memo     string
	Deposit  int64
	Withdraw int64
}

// Record validates e against the current balance and submits it.
// It returns the balance after the entry.
func (s *Service) Record(ctx context.Context, sess Session, e Entry) (int64, error) {
	if err := sess.Check(); err != nil {
		return 0, err
	}
	balance, err := s.Balance(ctx, sess)
	if err != nil {
		return 0, err
	}
	if err := validate.Join(validate.Transaction(e.Memo, e.Deposit, e.Withdraw, balance)); err != nil {
		return 0, err
	}
	if err := s.backend.AddTransaction(ctx, sess.Account, sess.PIN, e.Memo, e.Deposit, e.Withdraw); err != nil {
		return 0, fmt.Errorf("recording transaction: %w", err)
	}
	return balance + e.Deposit - e.Withdraw, nil
}

// DeleteTransaction removes the transaction with the given ID. It refuses when
// the remaining history would dip below zero at any point.
func (s *Service) DeleteTransaction(ctx context.Context, sess Session, id string) error {
	if err := sess.Check(); err != nil {
		return err
	}
	if id == "" {
		return validate.Join([]validate.Error{{Field: "id", Message: "is required"}})
	}
	txs, err := s.backend.Transactions(ctx, sess.Account, sess.PIN)
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}

	remaining := make([]model.Transaction, 0, len(txs))
	found := false
	for _, tx := range txs {
		if tx.ID == id && !found {
			found = true
			continue
		}
		remaining = append(remaining, tx)
	}
	if !found {
		return fmt.Errorf("transaction %s not found", id)
	}
	for _, row := range ledger.Compute(remaining) {
		if row.Balance < 0 {
			return fmt.Errorf("deleting transaction %s would leave the balance at %d after %q", id, row.Balance, row.Memo)
		}
	}

	if err := s.backend.DeleteTransaction(ctx, sess.Account, sess.PIN, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return nil
}

// Subscribe validates and submits a savings contract, returning the preview
// computed with the session's Now.
func (s *Service) Subscribe(ctx context.Context, sess Session, principal int64, weeks int) (model.SavingsPreview, error) {
	if err := sess.Check(); err != nil {
		return model.SavingsPreview{}, err
	}
	balance, err := s.Balance(ctx, sess)
	if err != nil {
		return model.SavingsPreview{}, err
	}
	if err := validate.Join(validate.Savings(principal, weeks, balance)); err != nil {
		return model.SavingsPreview{}, err
	}
	if err := s.backend.CreateSavings(ctx, sess.Account, sess.PIN, principal, weeks); err != nil {
		return model.SavingsPreview{}, fmt.Errorf("creating savings: %w", err)
	}
	return ledger.PreviewSavings(principal, weeks, sess.Now), nil
}

// CancelSavings cancels an active contract by ID.
func (s *Service) CancelSavings(ctx context.Context, sess Session, id string) error {
	if err := sess.Check(); err != nil {
		return err
	}
	savings, err := s.backend.Savings(ctx, sess.Account, sess.PIN)
	if err != nil {
		return fmt.Errorf("loading savings: %w", err)
	}
	found := false
	for _, c := range savings {
		if c.ID != id {
			continue
		}
		if !c.Active() {
			return fmt.Errorf("savings %s is %s, not active", id, c.Status)
		}
		found = true
	}
	if !found {
		return fmt.Errorf("savings %s not found", id)
	}
	if err := s.backend.CancelSavings(ctx, sess.Account, sess.PIN, id); err != nil {
		return fmt.Errorf("canceling savings: %w", err)
	}
	return nil
}

// SetGoal validates and records a goal, then returns the projection against it.
func (s *Service) SetGoal(ctx context.Context, sess Session, goal model.Goal) (model.Projection, error) {
	if err := sess.Check(); err != nil {
		return model.Projection{}, err
	}
	if err := validate.Join(validate.Goal(goal.Amount, goal.Date, sess.Now)); err != nil {
		return model.Projection{}, err
	}
	if err := s.backend.SetGoal(ctx, sess.Account, sess.PIN, goal); err != nil {
		return model.Projection{}, fmt.Errorf("setting goal: %w", err)
	}

	snap, err := s.View(ctx, sess)
	if err != nil {
		return model.Projection{}, err
	}
	return ledger.ProjectGoal(snap.Balance, goal, snap.Savings), nil
}

// ApplyTemplate returns an Entry pre-filled from the template with the given ID.
// An empty memo is replaced by the template label.
func (s *Service) ApplyTemplate(ctx context.Context, id, memo string) (Entry, error) {
	tmpls, err := s.backend.Templates(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("loading templates: %w", err)
	}
	for _, t := range tmpls {
		if t.ID != id {
			continue
		}
		dep, wd := t.Amounts()
		if memo == "" {
			memo = t.Label
		}
		return Entry{Memo: memo, Deposit: dep, Withdraw: wd}, nil
	}
	return Entry{}, fmt.Errorf("template %s not found", id)
}
