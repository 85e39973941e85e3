package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/pointbank/passbook/internal/validate"
)

var errPINRequired = errors.New("pin: required (pass --pin or run in a terminal)")

// prompter asks the user for input the flags did not supply.
type prompter interface {
	PIN(account, given string) (string, error)
	Confirm(question string) (bool, error)
}

// terminalPrompter uses huh forms when in is a terminal and refuses otherwise.
type terminalPrompter struct {
	in io.Reader
}

func (p terminalPrompter) isTerminal() bool {
	f, ok := p.in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p terminalPrompter) PIN(account, given string) (string, error) {
	if given != "" {
		return given, nil
	}
	if !p.isTerminal() {
		return "", errPINRequired
	}

	var pin string
	err := huh.NewInput().
		Title(fmt.Sprintf("PIN for %s", account)).
		EchoMode(huh.EchoModePassword).
		CharLimit(4).
		Validate(func(s string) error { return validate.Join(validate.PIN(s)) }).
		Value(&pin).
		Run()
	if err != nil {
		return "", fmt.Errorf("reading pin: %w", err)
	}
	return pin, nil
}

// Confirm returns false without asking when stdin is not a terminal.
func (p terminalPrompter) Confirm(question string) (bool, error) {
	if !p.isTerminal() {
		return false, nil
	}

	var ok bool
	err := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("reading response: %w", err)
	}
	return ok, nil
}
