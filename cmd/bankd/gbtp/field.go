package gbtp

import (
	"strconv"
	"strings"
)

// Operation names accepted on the wire.
const (
	OpBalance  = "BALANCE"
	OpDeposit  = "DEPOSIT"
	OpWithdraw = "WITHDRAW"
	OpTransfer = "TRANSFER"
)

// Response statuses.
const (
	StatusOK    Status = "OK"
	StatusError Status = "ERROR"
)

type OperationKind string

func (o OperationKind) Name() string {
	return strings.ToUpper(strings.TrimSpace(string(o)))
}

func (o OperationKind) Validate() bool {
	switch o.Name() {
	case OpBalance, OpDeposit, OpWithdraw, OpTransfer:
		return true
	}
	return false
}

// AccountID is an account identifier. Validation only checks that the text
// is numeric; identifiers are stored and compared as their raw text, so
// "1001" and "01001" are different accounts.
type AccountID string

func (a AccountID) Text() string {
	return strings.TrimSpace(string(a))
}

func (a AccountID) Validate() bool {
	t := a.Text()
	if t == "" {
		return false
	}
	_, err := strconv.ParseFloat(t, 64)
	return err == nil
}

// Amount accepts any non-negative decimal text. Business rules on top of
// this (strictly positive for mutations, zero for balance queries) live in
// ValidateRequest.
type Amount string

func (a Amount) Text() string {
	return strings.TrimSpace(string(a))
}

func (a Amount) Validate() bool {
	t := a.Text()
	if t == "" {
		return false
	}
	v, err := strconv.ParseFloat(t, 64)
	return err == nil && v >= 0
}

func (a Amount) Value() float64 {
	v, _ := strconv.ParseFloat(a.Text(), 64)
	return v
}

type Status string

func (s Status) Name() string {
	return strings.ToUpper(strings.TrimSpace(string(s)))
}

func (s Status) Validate() bool {
	return s.Name() == string(StatusOK) || s.Name() == string(StatusError)
}

type Message string

func (m Message) Text() string {
	return strings.TrimSpace(string(m))
}

func (m Message) Validate() bool {
	return m.Text() != ""
}

type Balance string

func (b Balance) Text() string {
	return strings.TrimSpace(string(b))
}

func (b Balance) Validate() bool {
	t := b.Text()
	if t == "" {
		return false
	}
	v, err := strconv.ParseFloat(t, 64)
	return err == nil && v >= 0
}

func (b Balance) Value() float64 {
	v, _ := strconv.ParseFloat(b.Text(), 64)
	return v
}
