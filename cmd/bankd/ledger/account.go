package ledger

// Account is a bank account. The identifier is the raw wire text, never
// numerically normalized.
type Account struct {
	ID      string  `json:"id"`
	Balance float64 `json:"balance"`
}
