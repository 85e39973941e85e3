package client

import "net/http"

// Request is one action of the ledger service protocol. The exported fields
// of a request are its wire fields; Action names the variant.
type Request interface {
	Action() string
	Method() string
}

type reader struct{}

func (reader) Method() string { return http.MethodGet }

type writer struct{}

func (writer) Method() string { return http.MethodPost }

// Credentials identify an account for every per-account action.
type Credentials struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

type ListAccounts struct{ reader }

func (ListAccounts) Action() string { return "list_accounts" }

type CreateAccount struct {
	writer
	Credentials
}

func (CreateAccount) Action() string { return "create_account" }

type DeleteAccount struct {
	writer
	Credentials
}

func (DeleteAccount) Action() string { return "delete_account" }

type AddTransaction struct {
	writer
	Credentials
	Memo      string `json:"memo"`
	Deposit   int64  `json:"deposit"`
	Withdraw  int64  `json:"withdraw"`
	RequestID string `json:"request_id"`
}

func (AddTransaction) Action() string { return "add_transaction" }

type DeleteTransaction struct {
	writer
	Credentials
	ID string `json:"id"`
}

func (DeleteTransaction) Action() string { return "delete_transaction" }

type GetTransactions struct {
	reader
	Credentials
}

func (GetTransactions) Action() string { return "get_transactions" }

type ListSavings struct {
	reader
	Credentials
}

func (ListSavings) Action() string { return "savings_list" }

type CreateSavings struct {
	writer
	Credentials
	Principal int64  `json:"principal"`
	Weeks     int    `json:"weeks"`
	RequestID string `json:"request_id"`
}

func (CreateSavings) Action() string { return "savings_create" }

type CancelSavings struct {
	writer
	Credentials
	ID string `json:"id"`
}

func (CancelSavings) Action() string { return "savings_cancel" }

type GetGoal struct {
	reader
	Credentials
}

func (GetGoal) Action() string { return "get_goal" }

type SetGoal struct {
	writer
	Credentials
	Amount int64  `json:"goal_amount"`
	Date   string `json:"goal_date"` // YYYY-MM-DD
}

func (SetGoal) Action() string { return "set_goal" }

type ListTemplates struct{ reader }

func (ListTemplates) Action() string { return "list_templates" }

// CreateTemplate and DeleteTemplate require the admin PIN.
type CreateTemplate struct {
	writer
	AdminPIN string `json:"admin_pin"`
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	Amount   int64  `json:"amount"`
}

func (CreateTemplate) Action() string { return "template_create" }

type DeleteTemplate struct {
	writer
	AdminPIN string `json:"admin_pin"`
	ID       string `json:"id"`
}

func (DeleteTemplate) Action() string { return "template_delete" }
