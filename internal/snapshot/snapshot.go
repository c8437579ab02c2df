// Package snapshot persists the complete account state of the ledger. Every
// save is a full-state rewrite, there is no transaction log.
package snapshot

import "github.com/pkg/errors"

// ErrNoSnapshot reports that the backing store holds no state yet.
var ErrNoSnapshot = errors.New("no snapshot available")

// Store loads and saves the full id to balance mapping. Save must replace
// the previous state wholesale and return only after the write is durable.
// Load returns ErrNoSnapshot when nothing was ever saved.
type Store interface {
	Load() (map[string]float64, error)
	Save(balances map[string]float64) error
}
