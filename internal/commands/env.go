package commands

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pointbank/passbook/internal/activity"
	"github.com/pointbank/passbook/internal/client"
	"github.com/pointbank/passbook/internal/config"
	"github.com/pointbank/passbook/internal/passbook"
	"github.com/pointbank/passbook/internal/render"
)

// env is everything one command invocation needs. It is built per command
// run and never shared.
type env struct {
	cfg     *config.Config
	client  *client.Client
	svc     *passbook.Service
	out     *render.Renderer
	now     time.Time
	errOut  io.Writer
	logDir  string
	prompts prompter
}

func newEnv(cmd *cobra.Command, g *globalFlags) (*env, error) {
	cfg, err := config.Resolve(g.configPath)
	if err != nil {
		return nil, err
	}
	return newEnvFromConfig(cmd, g, cfg)
}

func newEnvFromConfig(cmd *cobra.Command, g *globalFlags, cfg *config.Config) (*env, error) {
	now, err := referenceTime(g.now)
	if err != nil {
		return nil, err
	}
	loc := cfg.Location()

	logger := slog.New(slog.DiscardHandler)
	if g.verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	c := client.New(client.Options{
		URL:      cfg.Service.URL,
		Timeout:  time.Duration(cfg.Service.Timeout),
		Retries:  cfg.Service.Retries,
		Backoff:  500 * time.Millisecond,
		Location: loc,
		Logger:   logger,
	})

	return &env{
		cfg:     cfg,
		client:  c,
		svc:     passbook.NewService(c),
		out:     render.New(cmd.OutOrStdout(), render.Options{Location: loc, MemoWidth: cfg.Display.MemoWidth}),
		now:     now.In(loc),
		errOut:  cmd.ErrOrStderr(),
		logDir:  logDir(g.configPath, cfg.Log.Dir),
		prompts: terminalPrompter{in: cmd.InOrStdin()},
	}, nil
}

// logDir resolves a relative log dir against the config file's directory.
func logDir(configPath, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Dir(configPath), dir)
}

func referenceTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --now: %w", err)
	}
	return t, nil
}

// session builds the caller-owned session for account, prompting for the
// PIN when it was not given.
func (e *env) session(account, pin string) (passbook.Session, error) {
	pin, err := e.prompts.PIN(account, pin)
	if err != nil {
		return passbook.Session{}, err
	}
	return passbook.Session{Account: strings.TrimSpace(account), PIN: pin, Now: e.now}, nil
}

// logAction appends to the activity log. Failures to log are warnings only.
func (e *env) logAction(account, action, details string, actionErr error) {
	entry := activity.Entry{
		Timestamp: e.now,
		Account:   account,
		Action:    action,
		Details:   details,
		Result:    activity.Outcome(actionErr),
	}
	if err := activity.Append(e.logDir, entry); err != nil {
		fmt.Fprintf(e.errOut, "warning: failed to write activity log: %v\n", err)
	}
}
