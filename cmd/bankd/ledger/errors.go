package ledger

import (
	"fmt"

	"github.com/pkg/errors"
)

// Business rule violations. The error texts are wire-visible, they become
// the MESSAGE of the error response.
var (
	ErrAccountNotFound     = errors.New("Conta inexistente")
	ErrSourceNotFound      = errors.New("Conta de origem inexistente")
	ErrDestinationNotFound = errors.New("Conta de destino inexistente")
	ErrInvalidAmount       = errors.New("Valor inválido")
	ErrInsufficientFunds   = errors.New("Saldo insuficiente")
	ErrSameAccount         = errors.New("Conta de origem e destino devem ser diferentes")
)

// StorageError reports that the snapshot write after a mutation failed. It
// is not a business error: the mutation was rolled back in memory and the
// dispatcher must not claim success to the client.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("persist snapshot: %v", e.Err)
}
