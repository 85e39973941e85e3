package commands_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointbank/passbook/internal/activity"
	"github.com/pointbank/passbook/internal/commands"
	"github.com/pointbank/passbook/internal/config"
	"github.com/pointbank/passbook/internal/export"
)

const testNow = "2025-03-10T09:00:00Z"

// fakeService answers each action with a canned JSON body and records writes.
type fakeService struct {
	mu      sync.Mutex
	replies map[string]string
	posts   []map[string]any
}

func (f *fakeService) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	action := r.URL.Query().Get("action")
	if r.Method == http.MethodPost {
		var body map[string]any
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		f.posts = append(f.posts, body)
		action, _ = body["action"].(string)
	}

	reply, ok := f.replies[action]
	if !ok {
		reply = `{"ok":true}`
	}
	_, _ = io.WriteString(w, reply)
}

func (f *fakeService) written(action string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []map[string]any
	for _, p := range f.posts {
		if p["action"] == action {
			out = append(out, p)
		}
	}
	return out
}

// setup starts a fake service, writes a passbook.yaml pointing at it into a
// temp dir and makes that dir the working directory.
func setup(t *testing.T, replies map[string]string) (*fakeService, string) {
	t.Helper()
	f := &fakeService{replies: replies}
	srv := httptest.NewServer(http.HandlerFunc(f.handler))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvURL, "")

	cfg := config.Default(srv.URL + "/exec")
	cfg.Display.Timezone = "UTC"
	require.NoError(t, config.Save(filepath.Join(dir, "passbook.yaml"), cfg))
	return f, dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--now", testNow}, args...))
	err := commands.Execute(cmd)
	return out.String(), err
}

var ledgerReplies = map[string]string{
	"get_transactions": `{"ok":true,
		"headers":["id","datetime","memo","deposit","withdraw"],
		"rows":[
			["t1","2025-03-01 09:00:00","allowance",100,0],
			["t2","2025-03-02 09:00:00","snack",0,30],
			["t3","2025-03-03 09:00:00","chores",50,0]
		]}`,
	"savings_list": `{"ok":true,
		"headers":["id","principal","weeks","interest","maturity","status"],
		"rows":[["s1",80,4,16,"2025-03-20","active"]]}`,
	"get_goal": `{"ok":true,"goal":{"goal_amount":200,"goal_date":"2025-03-31"}}`,
}

func TestShow(t *testing.T) {
	setup(t, ledgerReplies)

	out, err := run(t, "show", "Jia", "--pin", "0123")
	require.NoError(t, err)

	assert.Contains(t, out, "Passbook: Jia")
	assert.Contains(t, out, "Deposits: 150  Withdrawals: 30")
	assert.Contains(t, out, "Current balance: 120 points")
	assert.Contains(t, out, "s1")
	assert.Contains(t, out, "1 active contract(s), 80 points locked until maturity")
	assert.Contains(t, out, "Goal:      200 points by 2025-03-31")
	assert.Contains(t, out, "60%")
	assert.Contains(t, out, "100% (216 points, +96 from savings)")
}

func TestShow_NoGoal(t *testing.T) {
	replies := map[string]string{
		"get_transactions": ledgerReplies["get_transactions"],
		"savings_list":     `{"ok":true,"rows":[]}`,
		"get_goal":         `{"ok":true,"goal":null}`,
	}
	setup(t, replies)

	out, err := run(t, "show", "Jia", "--pin", "0123")
	require.NoError(t, err)
	assert.Contains(t, out, "No savings contracts.")
	assert.Contains(t, out, "No goal set.")
}

func TestShow_RequiresPIN(t *testing.T) {
	setup(t, ledgerReplies)

	_, err := run(t, "show", "Jia")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pin")
}

func TestShow_ServiceError(t *testing.T) {
	setup(t, map[string]string{"get_transactions": `{"ok":false,"error":"wrong pin"}`})

	out, err := run(t, "show", "Jia", "--pin", "9999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong pin")
	assert.Contains(t, out, "✗ ")
	assert.Contains(t, out, "wrong pin")
	assert.NotContains(t, out, "9999")
}

func TestRecord_Deposit(t *testing.T) {
	f, dir := setup(t, ledgerReplies)

	out, err := run(t, "record", "Jia", "--pin", "0123", "--memo", "gift", "--deposit", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance is now 170 points")

	posts := f.written("add_transaction")
	require.Len(t, posts, 1)
	assert.Equal(t, "gift", posts[0]["memo"])
	assert.EqualValues(t, 50, posts[0]["deposit"])
	assert.EqualValues(t, 0, posts[0]["withdraw"])
	_, err = uuid.Parse(posts[0]["request_id"].(string))
	assert.NoError(t, err, "request id")

	entries, err := activity.Read(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Jia", entries[0].Account)
	assert.Equal(t, "add_transaction", entries[0].Action)
	assert.Equal(t, activity.ResultOK, entries[0].Result)
}

func TestRecord_WithdrawOverBalance(t *testing.T) {
	f, _ := setup(t, ledgerReplies)

	_, err := run(t, "record", "Jia", "--pin", "0123", "--memo", "bike", "--withdraw", "500")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "withdraw")
	assert.Empty(t, f.written("add_transaction"))
}

func TestRecord_BothAmounts(t *testing.T) {
	f, _ := setup(t, ledgerReplies)

	_, err := run(t, "record", "Jia", "--pin", "0123", "--memo", "x", "--deposit", "5", "--withdraw", "5")
	require.Error(t, err)
	assert.Empty(t, f.written("add_transaction"))
}

func TestRecord_Template(t *testing.T) {
	replies := map[string]string{
		"get_transactions": ledgerReplies["get_transactions"],
		"list_templates": `{"ok":true,
			"headers":["id","label","kind","amount"],
			"rows":[["tp1","Homework done","deposit",20]]}`,
	}
	f, _ := setup(t, replies)

	_, err := run(t, "record", "Jia", "--pin", "0123", "--template", "tp1")
	require.NoError(t, err)

	posts := f.written("add_transaction")
	require.Len(t, posts, 1)
	assert.Equal(t, "Homework done", posts[0]["memo"])
	assert.EqualValues(t, 20, posts[0]["deposit"])
}

func TestSavingsPreview_Offline(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvURL, "")

	out, err := run(t, "savings", "preview", "--principal", "100", "--weeks", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Rate:       25%")
	assert.Contains(t, out, "Interest:   25 points")
	assert.Contains(t, out, "At maturity: 125 points on 2025-04-14")
}

func TestSavingsPreview_WeeksOutOfRange(t *testing.T) {
	_, err := run(t, "savings", "preview", "--principal", "100", "--weeks", "11")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weeks")
}

func TestSavingsSubscribe(t *testing.T) {
	f, _ := setup(t, ledgerReplies)

	out, err := run(t, "savings", "subscribe", "Jia", "--pin", "0123", "--principal", "100", "--weeks", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Savings opened")
	assert.Contains(t, out, "At maturity: 110 points on 2025-03-24")

	posts := f.written("savings_create")
	require.Len(t, posts, 1)
	assert.EqualValues(t, 100, posts[0]["principal"])
	assert.EqualValues(t, 2, posts[0]["weeks"])
}

func TestSavingsSubscribe_OverBalance(t *testing.T) {
	f, _ := setup(t, ledgerReplies)

	_, err := run(t, "savings", "subscribe", "Jia", "--pin", "0123", "--principal", "121", "--weeks", "2")
	require.Error(t, err)
	assert.Empty(t, f.written("savings_create"))
}

func TestSavingsCancel(t *testing.T) {
	f, _ := setup(t, ledgerReplies)

	_, err := run(t, "savings", "cancel", "Jia", "s1", "--pin", "0123")
	require.NoError(t, err)
	require.Len(t, f.written("savings_cancel"), 1)

	_, err = run(t, "savings", "cancel", "Jia", "nope", "--pin", "0123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGoalSet(t *testing.T) {
	f, _ := setup(t, ledgerReplies)

	out, err := run(t, "goal", "set", "Jia", "--pin", "0123", "--amount", "240", "--date", "2025-03-31")
	require.NoError(t, err)
	assert.Contains(t, out, "Goal saved")
	assert.Contains(t, out, "(216 points, +96 from savings)")

	posts := f.written("set_goal")
	require.Len(t, posts, 1)
	assert.EqualValues(t, 240, posts[0]["goal_amount"])
	assert.Equal(t, "2025-03-31", posts[0]["goal_date"])
}

func TestGoalSet_PastDate(t *testing.T) {
	f, _ := setup(t, ledgerReplies)

	_, err := run(t, "goal", "set", "Jia", "--pin", "0123", "--amount", "240", "--date", "2025-01-01")
	require.Error(t, err)
	assert.Empty(t, f.written("set_goal"))
}

func TestAccounts(t *testing.T) {
	f, _ := setup(t, map[string]string{"list_accounts": `{"ok":true,"accounts":["Mina","Jia"," Jia "]}`})

	out, err := run(t, "accounts", "list")
	require.NoError(t, err)
	assert.Equal(t, "Jia\nMina\n", out)

	_, err = run(t, "accounts", "create", "Jia", "--pin", "0123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "accounts", "create", "Sora", "--pin", "12a4")
	require.Error(t, err)

	_, err = run(t, "accounts", "create", "Sora", "--pin", "1234")
	require.NoError(t, err)
	require.Len(t, f.written("create_account"), 1)
}

func TestAccounts_NoPrefixMatch(t *testing.T) {
	setup(t, map[string]string{"list_accounts": `{"ok":true,"accounts":["Mina","Jia"]}`})

	out, err := run(t, "accounts", "list", "--prefix", "so")
	require.NoError(t, err)
	assert.Contains(t, out, `No accounts match "so" (2 in total).`)

	out, err = run(t, "accounts", "list", "--prefix", "j")
	require.NoError(t, err)
	assert.Equal(t, "Jia\n", out)
}

func TestTransactionsDelete(t *testing.T) {
	f, dir := setup(t, ledgerReplies)

	_, err := run(t, "transactions", "delete", "Jia", "t3", "--pin", "0123")
	require.Error(t, err, "needs confirmation")
	assert.Empty(t, f.written("delete_transaction"))

	_, err = run(t, "transactions", "delete", "Jia", "t1", "--pin", "0123", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "balance at -30")
	assert.Empty(t, f.written("delete_transaction"))

	_, err = run(t, "transactions", "delete", "Jia", "t3", "--pin", "0123", "--yes")
	require.NoError(t, err)
	posts := f.written("delete_transaction")
	require.Len(t, posts, 1)
	assert.Equal(t, "t3", posts[0]["id"])

	entries, err := activity.Read(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "delete_transaction", entries[1].Action)
	assert.Equal(t, activity.ResultOK, entries[1].Result)
	assert.Equal(t, activity.ResultFailed, entries[0].Result)
}

func TestAccountsDelete_NeedsConfirmation(t *testing.T) {
	f, _ := setup(t, nil)

	_, err := run(t, "accounts", "delete", "Jia", "--pin", "0123")
	require.Error(t, err)
	assert.Empty(t, f.written("delete_account"))

	_, err = run(t, "accounts", "delete", "Jia", "--pin", "0123", "--yes")
	require.NoError(t, err)
	assert.Len(t, f.written("delete_account"), 1)
}

func TestTemplates(t *testing.T) {
	f, _ := setup(t, map[string]string{
		"list_templates": `{"ok":true,"rows":[["tp1","Homework done","deposit",20]]}`,
	})

	out, err := run(t, "templates", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Homework done")

	_, err = run(t, "templates", "add", "--admin-pin", "9999", "--label", "Lost book", "--kind", "bogus", "--amount", "10")
	require.Error(t, err)

	_, err = run(t, "templates", "add", "--admin-pin", "9999", "--label", "Lost book", "--kind", "Withdraw", "--amount", "10")
	require.NoError(t, err)
	posts := f.written("template_create")
	require.Len(t, posts, 1)
	assert.Equal(t, "withdraw", posts[0]["kind"])
	assert.Equal(t, "9999", posts[0]["admin_pin"])

	_, err = run(t, "templates", "delete", "tp1", "--admin-pin", "9999")
	require.NoError(t, err)
	assert.Len(t, f.written("template_delete"), 1)
}

func TestExport(t *testing.T) {
	_, dir := setup(t, ledgerReplies)
	path := filepath.Join(dir, "jia.csv")

	out, err := run(t, "export", "Jia", "--pin", "0123", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 3 rows")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := export.Read(f, time.UTC)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(120), rows[2].Balance)
}

func TestOpen(t *testing.T) {
	_, dir := setup(t, ledgerReplies)
	path := filepath.Join(dir, "jia.csv")

	_, err := run(t, "export", "Jia", "--pin", "0123", "--out", path)
	require.NoError(t, err)

	// No service needed.
	t.Setenv(config.EnvURL, "")
	out, err := run(t, "open", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-02 09:00")
	assert.Contains(t, out, "Current balance: 120 points")
}

func TestOpen_NotAnExport(t *testing.T) {
	_, dir := setup(t, nil)
	path := filepath.Join(dir, "notes.csv")
	require.NoError(t, os.WriteFile(path, []byte(export.Header+"\nt1,yesterday,m,1,,1,1\n"), 0o644))

	_, err := run(t, "open", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing datetime")
}

func TestLog(t *testing.T) {
	setup(t, ledgerReplies)

	_, err := run(t, "record", "Jia", "--pin", "0123", "--memo", "gift", "--deposit", "1")
	require.NoError(t, err)
	_, err = run(t, "record", "Mina", "--pin", "0123", "--memo", "gift", "--deposit", "2")
	require.NoError(t, err)

	out, err := run(t, "log", "--account", "Mina")
	require.NoError(t, err)
	assert.Contains(t, out, "Mina")
	assert.NotContains(t, out, "Jia")
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "passbook.yaml")

	_, err := run(t, "--config", path, "init", "--url", "https://example.test/exec")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/exec", cfg.Service.URL)
	assert.DirExists(t, filepath.Join(dir, "logs"))

	_, err = run(t, "--config", path, "init", "--url", "https://other.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "--config", path, "init", "--url", "https://other.test", "--force")
	require.NoError(t, err)
}

func TestInit_InvalidTimezone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passbook.yaml")

	_, err := run(t, "--config", path, "init", "--url", "https://example.test/exec", "--timezone", "Asia/Seol")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Asia/Seol")
	assert.NoFileExists(t, path)
}

func TestMissingURL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvURL, "")

	_, err := run(t, "accounts", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service url not set")
}
