package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/pointbank/passbook/internal/activity"
	"github.com/pointbank/passbook/internal/ledger"
	"github.com/pointbank/passbook/internal/model"
)

const (
	timeLayout = "2006-01-02 15:04"
	dateLayout = "2006-01-02"
	barWidth   = 20
)

// Options controls how passbook data is drawn.
type Options struct {
	Location  *time.Location
	MemoWidth int
}

func (o Options) loc() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// Renderer writes passbook views to one writer.
type Renderer struct {
	w    io.Writer
	opts Options
	*Styles
}

// New creates a Renderer.
func New(w io.Writer, opts Options) *Renderer {
	return &Renderer{w: w, opts: opts, Styles: NewStyles(w)}
}

// Ledger draws the passbook table followed by the current balance.
func (r *Renderer) Ledger(rows []model.LedgerRow) error {
	if len(rows) == 0 {
		r.Info("No transactions yet.")
		return nil
	}

	t := &table{cols: []column{
		{title: "Date"},
		{title: "Memo", max: r.opts.MemoWidth},
		{title: "Deposit", align: alignRight},
		{title: "Withdraw", align: alignRight},
		{title: "Balance", align: alignRight},
	}}
	for _, row := range rows {
		t.add(
			r.timestamp(row.Timestamp, timeLayout),
			row.Memo,
			blankZero(row.Deposit),
			blankZero(row.Withdraw),
			Points(row.Balance),
		)
	}
	if err := t.write(r.w, r.Styles); err != nil {
		return err
	}

	deposits, withdrawals := ledger.Totals(rows)
	_, err := fmt.Fprintf(r.w, "\nDeposits: %s  Withdrawals: %s\nCurrent balance: %s points\n",
		Points(deposits), Points(withdrawals), r.amount.Render(Points(ledger.CurrentBalance(rows))))
	return err
}

// Savings draws the account's savings contracts.
func (r *Renderer) Savings(savings []model.SavingsContract) error {
	if len(savings) == 0 {
		r.Info("No savings contracts.")
		return nil
	}

	t := &table{cols: []column{
		{title: "ID"},
		{title: "Principal", align: alignRight},
		{title: "Weeks", align: alignRight},
		{title: "Rate", align: alignRight},
		{title: "Interest", align: alignRight},
		{title: "Matures"},
		{title: "Status"},
	}}
	for _, c := range savings {
		t.add(
			c.ID,
			Points(c.Principal),
			fmt.Sprint(c.Weeks),
			percent(c.Rate.InexactFloat64()),
			Points(c.Interest),
			r.timestamp(c.MaturesAt, dateLayout),
			string(c.Status),
		)
	}
	return t.write(r.w, r.Styles)
}

// Preview draws a savings preview.
func (r *Renderer) Preview(p model.SavingsPreview) error {
	_, err := fmt.Fprintf(r.w,
		"Principal:  %s points for %d week(s)\nRate:       %s\nInterest:   %s points\nAt maturity: %s points on %s\n",
		Points(p.Principal), p.Weeks,
		percent(p.Rate.InexactFloat64()),
		r.amount.Render(Points(p.Interest)),
		r.amount.Render(Points(p.MaturityAmount)),
		r.timestamp(p.MaturesAt, dateLayout),
	)
	return err
}

// Projection draws goal progress now and with savings maturing by the goal date.
func (r *Renderer) Projection(goal model.Goal, p model.Projection) error {
	if !goal.IsSet() {
		r.Info("No goal set.")
		return nil
	}
	_, err := fmt.Fprintf(r.w,
		"Goal:      %s points by %s\nNow:       %s %s (%s points)\nExpected:  %s %s (%s points, +%s from savings)\n",
		Points(goal.Amount), r.timestamp(goal.Date, dateLayout),
		r.bar.Render(Bar(p.CurrentRatio, barWidth)), percent(p.CurrentRatio), Points(p.CurrentBalance),
		r.bar.Render(Bar(p.ExpectedRatio, barWidth)), percent(p.ExpectedRatio), Points(p.ExpectedBalance), Points(p.Bonus),
	)
	return err
}

// Accounts draws the account directory.
func (r *Renderer) Accounts(names []string) error {
	if len(names) == 0 {
		r.Info("No accounts yet. Create one with `passbook accounts create`.")
		return nil
	}
	for _, n := range names {
		if _, err := fmt.Fprintln(r.w, n); err != nil {
			return err
		}
	}
	return nil
}

// Templates draws the quick-entry presets.
func (r *Renderer) Templates(tmpls []model.Template) error {
	if len(tmpls) == 0 {
		r.Info("No templates.")
		return nil
	}
	t := &table{cols: []column{
		{title: "ID"},
		{title: "Label", max: r.opts.MemoWidth},
		{title: "Kind"},
		{title: "Amount", align: alignRight},
	}}
	for _, tm := range tmpls {
		t.add(tm.ID, tm.Label, string(tm.Kind), Points(tm.Amount))
	}
	return t.write(r.w, r.Styles)
}

// Activity draws local activity log entries.
func (r *Renderer) Activity(entries []activity.Entry) error {
	if len(entries) == 0 {
		r.Info("No activity recorded.")
		return nil
	}
	t := &table{cols: []column{
		{title: "Time"},
		{title: "Account"},
		{title: "Action"},
		{title: "Result"},
		{title: "Details"},
	}}
	for _, e := range entries {
		t.add(r.timestamp(e.Timestamp, timeLayout), e.Account, e.Action, e.Result, e.Details)
	}
	return t.write(r.w, r.Styles)
}

func (r *Renderer) timestamp(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(r.opts.loc()).Format(layout)
}

// Bar draws ratio as a fixed-width progress bar. ratio is clamped to [0, 1].
func Bar(ratio float64, width int) string {
	switch {
	case ratio < 0 || math.IsNaN(ratio):
		ratio = 0
	case ratio > 1:
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

func blankZero(n int64) string {
	if n == 0 {
		return ""
	}
	return Points(n)
}
