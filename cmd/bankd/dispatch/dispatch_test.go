package dispatch

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/gbtpbank/gbtp-api/cmd/bankd/gbtp"
	"github.com/gbtpbank/gbtp-api/cmd/bankd/ledger"
	"github.com/gbtpbank/gbtp-api/internal/snapshot"
)

type memStore struct {
	state   map[string]float64
	saveErr error
}

func (s *memStore) Load() (map[string]float64, error) {
	if s.state == nil {
		return nil, snapshot.ErrNoSnapshot
	}
	return s.state, nil
}

func (s *memStore) Save(balances map[string]float64) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.state = make(map[string]float64, len(balances))
	for id, b := range balances {
		s.state[id] = b
	}
	return nil
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *memStore) {
	store := &memStore{}
	l, err := ledger.NewLedger(store)
	if err != nil {
		t.Fatalf("an error '%s' was not expected when creating the test ledger", err)
	}
	return NewDispatcher(l, nil, nil), store
}

func TestHandleBalance(t *testing.T) {
	d, _ := newTestDispatcher(t)

	resp := d.Handle("OPERATION:BALANCE\nACCOUNT_ID:1001\nTO_ACCOUNT_ID:\nVALUE:0")

	assert.Equal(t, "STATUS:OK\nMESSAGE:Saldo consultado com sucesso\nBALANCE:500.00", resp)
}

func TestHandleDeposit(t *testing.T) {
	d, _ := newTestDispatcher(t)

	resp := d.Handle("OPERATION:DEPOSIT\nACCOUNT_ID:1001\nTO_ACCOUNT_ID:\nVALUE:100")

	assert.Equal(t, "STATUS:OK\nMESSAGE:Depósito realizado com sucesso\nBALANCE:600.00", resp)
}

func TestHandleWithdraw(t *testing.T) {
	d, _ := newTestDispatcher(t)

	resp := d.Handle("OPERATION:WITHDRAW\nACCOUNT_ID:1002\nTO_ACCOUNT_ID:\nVALUE:250.50")

	assert.Equal(t, "STATUS:OK\nMESSAGE:Saque efetuado\nBALANCE:749.50", resp)
}

func TestHandleWithdrawInsufficientFunds(t *testing.T) {
	d, _ := newTestDispatcher(t)

	resp := d.Handle("OPERATION:WITHDRAW\nACCOUNT_ID:1003\nTO_ACCOUNT_ID:\nVALUE:1000")

	assert.Equal(t, "STATUS:ERROR\nMESSAGE:Saldo insuficiente\nBALANCE:250.00", resp)
}

func TestHandleTransfer(t *testing.T) {
	d, store := newTestDispatcher(t)

	resp := d.Handle("OPERATION:TRANSFER\nACCOUNT_ID:1001\nTO_ACCOUNT_ID:1002\nVALUE:50")

	assert.Equal(t, "STATUS:OK\nMESSAGE:Transferência concluída\nBALANCE:450.00", resp)
	assert.Equal(t, 1050.00, store.state["1002"])
}

func TestHandleTransferUnknownSource(t *testing.T) {
	d, _ := newTestDispatcher(t)

	resp := d.Handle("OPERATION:TRANSFER\nACCOUNT_ID:9999\nTO_ACCOUNT_ID:1002\nVALUE:50")

	assert.Equal(t, "STATUS:ERROR\nMESSAGE:Conta de origem inexistente\nBALANCE:0", resp)
}

func TestHandleTransferUnknownDestination(t *testing.T) {
	d, _ := newTestDispatcher(t)

	resp := d.Handle("OPERATION:TRANSFER\nACCOUNT_ID:1001\nTO_ACCOUNT_ID:9999\nVALUE:50")

	// the source account resolves, so its balance is still reported
	assert.Equal(t, "STATUS:ERROR\nMESSAGE:Conta de destino inexistente\nBALANCE:500.00", resp)
}

func TestHandleTransferSameAccount(t *testing.T) {
	d, _ := newTestDispatcher(t)

	resp := d.Handle("OPERATION:TRANSFER\nACCOUNT_ID:1001\nTO_ACCOUNT_ID:1001\nVALUE:50")

	assert.Equal(t, "STATUS:ERROR\nMESSAGE:Conta de origem e destino devem ser diferentes\nBALANCE:500.00", resp)
}

func TestHandleMalformedRequest(t *testing.T) {
	d, _ := newTestDispatcher(t)

	resp := d.Handle("ACCOUNT_ID:1001\nTO_ACCOUNT_ID:\nVALUE:0")

	assert.Equal(t, "STATUS:ERROR\nMESSAGE:Mensagem malformada: campo OPERATION ausente\nBALANCE:0", resp)
}

func TestHandleValidationFailure(t *testing.T) {
	d, _ := newTestDispatcher(t)

	resp := d.Handle("OPERATION:DEPOSIT\nACCOUNT_ID:1001\nTO_ACCOUNT_ID:\nVALUE:-5")

	assert.Equal(t, "STATUS:ERROR\nMESSAGE:Valor inválido\nBALANCE:0", resp)
}

func TestHandleCaseInsensitiveOperation(t *testing.T) {
	d, _ := newTestDispatcher(t)

	resp := d.Handle("OPERATION:balance\nACCOUNT_ID:1001\nTO_ACCOUNT_ID:\nVALUE:0")

	assert.Equal(t, "STATUS:OK\nMESSAGE:Saldo consultado com sucesso\nBALANCE:500.00", resp)
}

func TestHandleAlwaysWellFormed(t *testing.T) {
	d, _ := newTestDispatcher(t)

	raws := []string{
		"",
		"garbage",
		"OPERATION:TRANSFER\nACCOUNT_ID:1003\nTO_ACCOUNT_ID:1001\nVALUE:99999",
		"OPERATION:BALANCE\nACCOUNT_ID:9999\nTO_ACCOUNT_ID:\nVALUE:0",
	}

	for _, raw := range raws {
		resp, err := gbtp.DecodeResponse(d.Handle(raw))

		assert.NoError(t, err, raw)
		assert.True(t, resp.Status.Validate(), raw)
		assert.True(t, resp.Message.Validate(), raw)
		assert.True(t, resp.Balance.Validate(), raw)
	}
}

func TestProcessUnknownOperation(t *testing.T) {
	d, _ := newTestDispatcher(t)

	// a request that slipped past validation with an unroutable operation
	resp := d.Process(gbtp.Request{Operation: "NOOP", AccountID: "1001", Value: "0"})

	assert.Equal(t, gbtp.StatusError, resp.Status)
	assert.Equal(t, "Operação desconhecida", resp.Message.Text())
	assert.Equal(t, "500.00", resp.Balance.Text())
}

func TestProcessBalanceUnknownAccount(t *testing.T) {
	d, _ := newTestDispatcher(t)

	resp := d.Process(gbtp.Request{Operation: "BALANCE", AccountID: "9999", Value: "0"})

	assert.Equal(t, gbtp.StatusError, resp.Status)
	assert.Equal(t, "Conta inexistente", resp.Message.Text())
	assert.Equal(t, "0", resp.Balance.Text())
}

func TestProcessPersistFailure(t *testing.T) {
	d, store := newTestDispatcher(t)
	store.saveErr = errors.New("disk full")

	resp := d.Process(gbtp.Request{Operation: "DEPOSIT", AccountID: "1001", Value: "100"})

	// the internal failure is not leaked and the rolled back balance is shown
	assert.Equal(t, gbtp.StatusError, resp.Status)
	assert.Equal(t, "Erro interno do servidor", resp.Message.Text())
	assert.Equal(t, "500.00", resp.Balance.Text())
}

func TestProcessFormatsTwoDecimals(t *testing.T) {
	d, _ := newTestDispatcher(t)

	resp := d.Process(gbtp.Request{Operation: "DEPOSIT", AccountID: "1001", Value: "0.5"})

	assert.Equal(t, "500.50", resp.Balance.Text())
}
