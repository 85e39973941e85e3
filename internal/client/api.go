package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pointbank/passbook/internal/id"
	"github.com/pointbank/passbook/internal/ledger"
	"github.com/pointbank/passbook/internal/model"
)

// ListAccounts returns the account directory.
func (c *Client) ListAccounts(ctx context.Context) ([]string, error) {
	var reply struct {
		Accounts []string `json:"accounts"`
	}
	if err := c.Do(ctx, ListAccounts{}, &reply); err != nil {
		return nil, err
	}
	return reply.Accounts, nil
}

// CreateAccount registers a new account with a 4-digit PIN.
func (c *Client) CreateAccount(ctx context.Context, name, pin string) error {
	return c.Do(ctx, CreateAccount{Credentials: Credentials{Name: name, PIN: pin}}, nil)
}

// DeleteAccount removes an account.
func (c *Client) DeleteAccount(ctx context.Context, name, pin string) error {
	return c.Do(ctx, DeleteAccount{Credentials: Credentials{Name: name, PIN: pin}}, nil)
}

// AddTransaction records a deposit or withdrawal. A request ID is attached so
// the service can drop duplicates caused by retries.
func (c *Client) AddTransaction(ctx context.Context, name, pin, memo string, deposit, withdraw int64) error {
	return c.Do(ctx, AddTransaction{
		Credentials: Credentials{Name: name, PIN: pin},
		Memo:        memo,
		Deposit:     deposit,
		Withdraw:    withdraw,
		RequestID:   id.NewRequest(),
	}, nil)
}

// DeleteTransaction removes a ledger row by ID.
func (c *Client) DeleteTransaction(ctx context.Context, name, pin, id string) error {
	return c.Do(ctx, DeleteTransaction{Credentials: Credentials{Name: name, PIN: pin}, ID: id}, nil)
}

// Transactions returns the account's ledger in service order.
func (c *Client) Transactions(ctx context.Context, name, pin string) ([]model.Transaction, error) {
	var reply table
	if err := c.Do(ctx, GetTransactions{Credentials: Credentials{Name: name, PIN: pin}}, &reply); err != nil {
		return nil, err
	}
	recs, err := reply.records(transactionHeaders)
	if err != nil {
		return nil, fmt.Errorf("get_transactions: %w", err)
	}

	txs := make([]model.Transaction, 0, len(recs))
	for _, r := range recs {
		ts, _ := ledger.ParseTimestampIn(r["datetime"], c.loc)
		txs = append(txs, model.Transaction{
			ID:        r.str("id"),
			Timestamp: ts,
			Memo:      r.str("memo"),
			Deposit:   ledger.CoerceInt(r["deposit"]),
			Withdraw:  ledger.CoerceInt(r["withdraw"]),
		})
	}
	return txs, nil
}

// Savings returns the account's savings contracts. Missing interest is
// derived from principal and weeks; unparsable maturities are left zero.
func (c *Client) Savings(ctx context.Context, name, pin string) ([]model.SavingsContract, error) {
	var reply table
	if err := c.Do(ctx, ListSavings{Credentials: Credentials{Name: name, PIN: pin}}, &reply); err != nil {
		return nil, err
	}
	recs, err := reply.records(savingsHeaders)
	if err != nil {
		return nil, fmt.Errorf("savings_list: %w", err)
	}

	out := make([]model.SavingsContract, 0, len(recs))
	for _, r := range recs {
		principal := ledger.CoerceInt(r["principal"])
		weeks := int(ledger.CoerceInt(r["weeks"]))
		interest := ledger.Interest(principal, weeks)
		if r.has("interest") {
			interest = ledger.CoerceInt(r["interest"])
		}
		maturesAt, _ := ledger.ParseTimestampIn(r["maturity"], c.loc)
		out = append(out, model.SavingsContract{
			ID:        r.str("id"),
			Principal: principal,
			Weeks:     weeks,
			Rate:      ledger.Rate(weeks),
			Interest:  interest,
			MaturesAt: maturesAt,
			Status:    model.ParseSavingsStatus(strings.ToLower(r.str("status"))),
		})
	}
	return out, nil
}

// CreateSavings subscribes principal for weeks.
func (c *Client) CreateSavings(ctx context.Context, name, pin string, principal int64, weeks int) error {
	return c.Do(ctx, CreateSavings{
		Credentials: Credentials{Name: name, PIN: pin},
		Principal:   principal,
		Weeks:       weeks,
		RequestID:   id.NewRequest(),
	}, nil)
}

// CancelSavings cancels an active contract.
func (c *Client) CancelSavings(ctx context.Context, name, pin, id string) error {
	return c.Do(ctx, CancelSavings{Credentials: Credentials{Name: name, PIN: pin}, ID: id}, nil)
}

// Goal returns the account's goal, or ErrNoGoal when none is recorded.
func (c *Client) Goal(ctx context.Context, name, pin string) (model.Goal, error) {
	var reply struct {
		Goal *struct {
			Amount any `json:"goal_amount"`
			Date   any `json:"goal_date"`
		} `json:"goal"`
	}
	if err := c.Do(ctx, GetGoal{Credentials: Credentials{Name: name, PIN: pin}}, &reply); err != nil {
		return model.Goal{}, err
	}
	if reply.Goal == nil {
		return model.Goal{}, ErrNoGoal
	}
	amount := ledger.CoerceInt(reply.Goal.Amount)
	date, ok := ledger.ParseTimestampIn(reply.Goal.Date, c.loc)
	if amount <= 0 {
		return model.Goal{}, ErrNoGoal
	}
	if ok {
		// Date cells may arrive as UTC instants; the goal is a calendar day
		// in the display zone.
		y, m, d := date.In(c.loc).Date()
		date = time.Date(y, m, d, 0, 0, 0, 0, c.loc)
	}
	return model.Goal{Amount: amount, Date: date}, nil
}

// SetGoal records the account's goal.
func (c *Client) SetGoal(ctx context.Context, name, pin string, goal model.Goal) error {
	return c.Do(ctx, SetGoal{
		Credentials: Credentials{Name: name, PIN: pin},
		Amount:      goal.Amount,
		Date:        goal.Date.Format("2006-01-02"),
	}, nil)
}

// Templates returns the quick-entry presets.
func (c *Client) Templates(ctx context.Context) ([]model.Template, error) {
	var reply table
	if err := c.Do(ctx, ListTemplates{}, &reply); err != nil {
		return nil, err
	}
	recs, err := reply.records(templateHeaders)
	if err != nil {
		return nil, fmt.Errorf("list_templates: %w", err)
	}

	out := make([]model.Template, 0, len(recs))
	for _, r := range recs {
		out = append(out, model.Template{
			ID:     r.str("id"),
			Label:  r.str("label"),
			Kind:   model.TemplateKind(strings.ToLower(r.str("kind"))),
			Amount: ledger.CoerceInt(r["amount"]),
		})
	}
	return out, nil
}

// CreateTemplate adds a preset. Requires the admin PIN.
func (c *Client) CreateTemplate(ctx context.Context, adminPIN string, t model.Template) error {
	return c.Do(ctx, CreateTemplate{
		AdminPIN: adminPIN,
		Label:    t.Label,
		Kind:     string(t.Kind),
		Amount:   t.Amount,
	}, nil)
}

// DeleteTemplate removes a preset. Requires the admin PIN.
func (c *Client) DeleteTemplate(ctx context.Context, adminPIN, id string) error {
	return c.Do(ctx, DeleteTemplate{AdminPIN: adminPIN, ID: id}, nil)
}
