// Package dispatch routes validated requests to the ledger and assembles
// wire responses. It is the single place where codec and ledger failures
// become error responses, so Handle never fails.
package dispatch

import (
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/gbtpbank/gbtp-api/cmd/bankd/gbtp"
	"github.com/gbtpbank/gbtp-api/cmd/bankd/ledger"
	"github.com/gbtpbank/gbtp-api/cmd/bankd/notification"
	"github.com/gbtpbank/gbtp-api/internal/cache"
	"github.com/gbtpbank/gbtp-api/internal/mq"
)

// Success messages, wire-visible and fixed per operation.
const (
	balanceMsg  = "Saldo consultado com sucesso"
	depositMsg  = "Depósito realizado com sucesso"
	withdrawMsg = "Saque efetuado"
	transferMsg = "Transferência concluída"

	unknownOpMsg = "Operação desconhecida"
	storageMsg   = "Erro interno do servidor"
)

type Dispatcher struct {
	Ledger *ledger.Ledger
	Cache  *cache.Redis // optional balance write-through
	MQ     *mq.Conn     // optional mutation notifications
}

func NewDispatcher(l *ledger.Ledger, c *cache.Redis, conn *mq.Conn) *Dispatcher {
	return &Dispatcher{Ledger: l, Cache: c, MQ: conn}
}

// Handle is the transport boundary: raw request text in, raw response text
// out. Decode and validation failures become error responses with balance
// "0" since no account could be resolved.
func (d *Dispatcher) Handle(raw string) string {
	req, err := gbtp.DecodeRequest(raw)
	if err != nil {
		return gbtp.EncodeResponse(unresolvedResponse(err))
	}

	if err := gbtp.ValidateRequest(req); err != nil {
		return gbtp.EncodeResponse(unresolvedResponse(err))
	}

	return gbtp.EncodeResponse(d.Process(req))
}

// Process executes a decoded, validated request and always returns a
// well-formed response.
func (d *Dispatcher) Process(r gbtp.Request) gbtp.Response {
	src := r.AccountID.Text()

	var (
		balance float64
		msg     string
		err     error
	)

	switch r.Operation.Name() {
	case gbtp.OpBalance:
		msg = balanceMsg
		balance, err = d.Ledger.GetBalance(src)
	case gbtp.OpDeposit:
		msg = depositMsg
		balance, err = d.Ledger.Deposit(src, r.Value.Value())
	case gbtp.OpWithdraw:
		msg = withdrawMsg
		balance, err = d.Ledger.Withdraw(src, r.Value.Value())
	case gbtp.OpTransfer:
		msg = transferMsg
		balance, err = d.Ledger.Transfer(src, r.ToAccountID.Text(), r.Value.Value())
	default:
		return d.errorResponse(src, errors.New(unknownOpMsg))
	}

	if err != nil {
		return d.errorResponse(src, err)
	}

	if r.Operation.Name() != gbtp.OpBalance {
		d.afterMutation(r, balance)
	}

	return gbtp.Response{
		Status:  gbtp.StatusOK,
		Message: gbtp.Message(msg),
		Balance: formatBalance(balance),
	}
}

// errorResponse reports the failure and recovers the best-known source
// balance for display; when the account itself is unknown the balance is
// the literal "0".
func (d *Dispatcher) errorResponse(src string, err error) gbtp.Response {
	msg := err.Error()
	if se, ok := errors.Cause(err).(*ledger.StorageError); ok {
		log.WithError(se.Err).Error("snapshot persistence failed")
		msg = storageMsg
	}

	resp := gbtp.Response{
		Status:  gbtp.StatusError,
		Message: gbtp.Message(msg),
		Balance: gbtp.Balance("0"),
	}
	if b, berr := d.Ledger.GetBalance(src); berr == nil {
		resp.Balance = formatBalance(b)
	}

	return resp
}

func (d *Dispatcher) afterMutation(r gbtp.Request, balance float64) {
	op := r.Operation.Name()
	src := r.AccountID.Text()
	dst := r.ToAccountID.Text()

	if d.Cache != nil {
		if err := d.Cache.SetBalance(src, balance); err != nil {
			log.Warnf("failed to cache balance for account id %s", src)
		}
		if op == gbtp.OpTransfer {
			if b, err := d.Ledger.GetBalance(dst); err == nil {
				if err := d.Cache.SetBalance(dst, b); err != nil {
					log.Warnf("failed to cache balance for account id %s", dst)
				}
			}
		}
	}

	if d.MQ != nil {
		notification.PublishTxNotification(*d.MQ, op, src, dst, r.Value.Value())
	}
}

func unresolvedResponse(err error) gbtp.Response {
	return gbtp.Response{
		Status:  gbtp.StatusError,
		Message: gbtp.Message(err.Error()),
		Balance: gbtp.Balance("0"),
	}
}

func formatBalance(v float64) gbtp.Balance {
	return gbtp.Balance(strconv.FormatFloat(v, 'f', 2, 64))
}
