// Package id generates the request IDs attached to writes so the ledger
// service can drop duplicates caused by retries.
package id

import "github.com/google/uuid"

// NewRequest returns a fresh request ID.
func NewRequest() string {
	return uuid.NewString()
}
