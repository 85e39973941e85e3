package accounts

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Lister fetches account names from the ledger service.
type Lister interface {
	ListAccounts(ctx context.Context) ([]string, error)
}

// Directory provides in-memory lookup over account names.
type Directory struct {
	names []string
}

// NewDirectory creates a Directory. Blank and duplicate names are dropped and
// the rest are kept sorted.
func NewDirectory(names []string) *Directory {
	clean := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			clean = append(clean, n)
		}
	}
	slices.Sort(clean)
	clean = slices.Compact(clean)
	return &Directory{names: clean}
}

// Load fetches the account names and returns a Directory.
func Load(ctx context.Context, l Lister) (*Directory, error) {
	names, err := l.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return NewDirectory(names), nil
}

// All returns all account names in sorted order.
func (d *Directory) All() []string {
	return slices.Clone(d.names)
}

// Len returns the number of accounts.
func (d *Directory) Len() int {
	return len(d.names)
}

// Exists reports whether an account name exists.
func (d *Directory) Exists(name string) bool {
	_, ok := slices.BinarySearch(d.names, strings.TrimSpace(name))
	return ok
}

// Match returns the names starting with prefix, ignoring case.
func (d *Directory) Match(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var result []string
	for _, n := range d.names {
		if strings.HasPrefix(strings.ToLower(n), prefix) {
			result = append(result, n)
		}
	}
	return result
}
