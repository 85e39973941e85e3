package model

// TemplateKind says which side of a transaction a template fills.
type TemplateKind string

const (
	TemplateDeposit  TemplateKind = "deposit"
	TemplateWithdraw TemplateKind = "withdraw"
)

// Template is an admin-defined quick-entry preset.
type Template struct {
	ID     string
	Label  string
	Kind   TemplateKind
	Amount int64
}

// Amounts returns the deposit and withdraw values the template pre-fills.
func (t Template) Amounts() (deposit, withdraw int64) {
	switch t.Kind {
	case TemplateDeposit:
		return t.Amount, 0
	case TemplateWithdraw:
		return 0, t.Amount
	}
	return 0, 0
}
