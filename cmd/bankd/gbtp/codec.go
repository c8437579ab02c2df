// Package gbtp implements the line-oriented key:value banking protocol:
// field types with syntactic validation, request/response decoding and
// encoding, and the cross-field request rules.
package gbtp

import "strings"

// Wire field keys, in their fixed encoding order.
const (
	KeyOperation   = "OPERATION"
	KeyAccountID   = "ACCOUNT_ID"
	KeyToAccountID = "TO_ACCOUNT_ID"
	KeyValue       = "VALUE"

	KeyStatus  = "STATUS"
	KeyMessage = "MESSAGE"
	KeyBalance = "BALANCE"
)

var requestKeys = []string{KeyOperation, KeyAccountID, KeyToAccountID, KeyValue}

var responseKeys = []string{KeyStatus, KeyMessage, KeyBalance}

type Request struct {
	Operation   OperationKind
	AccountID   AccountID
	ToAccountID AccountID
	Value       Amount
}

// HasDestination reports whether a non-empty destination was supplied.
func (r Request) HasDestination() bool {
	return r.ToAccountID.Text() != ""
}

type Response struct {
	Status  Status
	Message Message
	Balance Balance
}

// parseFields splits the raw text into lines and each line on its first
// colon. Lines without a colon and unknown keys are ignored by the callers;
// values are trimmed.
func parseFields(raw string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(raw, "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		fields[key] = strings.TrimSpace(line[idx+1:])
	}
	return fields
}

// DecodeRequest parses raw wire text into a Request. All four request keys
// must be present; TO_ACCOUNT_ID may carry an empty value, which means no
// destination. The operation name is case-insensitive on input.
func DecodeRequest(raw string) (Request, error) {
	fields := parseFields(raw)
	for _, k := range requestKeys {
		if _, ok := fields[k]; !ok {
			return Request{}, &MalformedError{Key: k}
		}
	}

	return Request{
		Operation:   OperationKind(strings.ToUpper(fields[KeyOperation])),
		AccountID:   AccountID(fields[KeyAccountID]),
		ToAccountID: AccountID(fields[KeyToAccountID]),
		Value:       Amount(fields[KeyValue]),
	}, nil
}

// DecodeResponse parses raw wire text into a Response.
func DecodeResponse(raw string) (Response, error) {
	fields := parseFields(raw)
	for _, k := range responseKeys {
		if _, ok := fields[k]; !ok {
			return Response{}, &MalformedError{Key: k}
		}
	}

	return Response{
		Status:  Status(fields[KeyStatus]),
		Message: Message(fields[KeyMessage]),
		Balance: Balance(fields[KeyBalance]),
	}, nil
}

// EncodeRequest renders the request in the fixed field order, newline
// joined, no trailing newline. An absent destination is emitted empty.
func EncodeRequest(r Request) string {
	lines := []string{
		KeyOperation + ":" + r.Operation.Name(),
		KeyAccountID + ":" + r.AccountID.Text(),
		KeyToAccountID + ":" + r.ToAccountID.Text(),
		KeyValue + ":" + r.Value.Text(),
	}
	return strings.Join(lines, "\n")
}

func EncodeResponse(r Response) string {
	lines := []string{
		KeyStatus + ":" + r.Status.Name(),
		KeyMessage + ":" + r.Message.Text(),
		KeyBalance + ":" + r.Balance.Text(),
	}
	return strings.Join(lines, "\n")
}
