// Package ledger owns the account map and the four balance operations. All
// connections share one Ledger instance; a single RWMutex serializes
// mutations so the operations stay linearizable, and the full snapshot is
// persisted while the write lock is still held.
package ledger

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/gbtpbank/gbtp-api/internal/snapshot"
)

// defaultBalances seeds the store on first start, when no snapshot exists.
var defaultBalances = map[string]float64{
	"1001": 500.00,
	"1002": 1000.00,
	"1003": 250.00,
}

type Ledger struct {
	mu       sync.RWMutex
	accounts map[string]*Account
	store    snapshot.Store
}

// NewLedger loads the account state from the store, seeding and persisting
// the default accounts when the store is empty.
func NewLedger(store snapshot.Store) (*Ledger, error) {
	balances, err := store.Load()
	if err != nil {
		if errors.Cause(err) != snapshot.ErrNoSnapshot {
			return nil, errors.Wrap(err, "load snapshot")
		}

		log.Info("no snapshot found, seeding default accounts")
		balances = make(map[string]float64, len(defaultBalances))
		for id, b := range defaultBalances {
			balances[id] = b
		}
		if err := store.Save(balances); err != nil {
			return nil, errors.Wrap(err, "persist seeded accounts")
		}
	}

	l := &Ledger{
		accounts: make(map[string]*Account, len(balances)),
		store:    store,
	}
	for id, b := range balances {
		l.accounts[id] = &Account{ID: id, Balance: b}
	}

	log.Infof("ledger initialized with %d accounts", len(l.accounts))
	return l, nil
}

// GetBalance returns the current balance of src. Read-only, no persistence.
func (l *Ledger) GetBalance(src string) (float64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	a, ok := l.accounts[src]
	if !ok {
		return 0, ErrAccountNotFound
	}
	return a.Balance, nil
}

// Accounts returns a copy of all accounts ordered by id.
func (l *Ledger) Accounts() []Account {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (l *Ledger) Deposit(src string, amt float64) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[src]
	if !ok {
		return 0, ErrAccountNotFound
	}
	if amt <= 0 {
		return 0, ErrInvalidAmount
	}

	a.Balance += amt
	if err := l.persist(); err != nil {
		a.Balance -= amt
		return 0, err
	}

	return a.Balance, nil
}

func (l *Ledger) Withdraw(src string, amt float64) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[src]
	if !ok {
		return 0, ErrAccountNotFound
	}
	if amt <= 0 {
		return 0, ErrInvalidAmount
	}
	if amt > a.Balance {
		return 0, ErrInsufficientFunds
	}

	a.Balance -= amt
	if err := l.persist(); err != nil {
		a.Balance += amt
		return 0, err
	}

	return a.Balance, nil
}

// Transfer moves amt from src to dst and returns the new source balance.
// Both balances change in one critical section and are persisted in one
// snapshot write; on persistence failure both are rolled back.
func (l *Ledger) Transfer(src, dst string, amt float64) (float64, error) {
	if src == dst {
		return 0, ErrSameAccount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	from, ok := l.accounts[src]
	if !ok {
		return 0, ErrSourceNotFound
	}
	to, ok := l.accounts[dst]
	if !ok {
		return 0, ErrDestinationNotFound
	}
	if amt <= 0 {
		return 0, ErrInvalidAmount
	}
	if amt > from.Balance {
		return 0, ErrInsufficientFunds
	}

	from.Balance -= amt
	to.Balance += amt
	if err := l.persist(); err != nil {
		from.Balance += amt
		to.Balance -= amt
		return 0, err
	}

	return from.Balance, nil
}

// persist writes the full snapshot. Callers must hold the write lock.
func (l *Ledger) persist() error {
	balances := make(map[string]float64, len(l.accounts))
	for id, a := range l.accounts {
		balances[id] = a.Balance
	}

	if err := l.store.Save(balances); err != nil {
		return &StorageError{Err: err}
	}
	return nil
}
