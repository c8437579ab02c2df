package gbtp

// ValidateRequest applies the cross-field request rules in a fixed order,
// the first failing rule wins. Transfer requests stop after the transfer
// rules, the remaining rules only apply to the other operations.
func ValidateRequest(r Request) error {
	if !r.Operation.Validate() {
		return &ValidationError{Reason: "Operação inválida"}
	}
	if !r.AccountID.Validate() {
		return &ValidationError{Reason: "Conta inválida"}
	}
	if !r.Value.Validate() {
		return &ValidationError{Reason: "Valor inválido"}
	}

	if r.Operation.Name() == OpTransfer {
		if !r.HasDestination() || !r.ToAccountID.Validate() {
			return &ValidationError{Reason: "Conta de destino inválida"}
		}
		if r.Value.Value() <= 0 {
			return &ValidationError{Reason: "Valor deve ser maior que zero"}
		}
		return nil
	}

	if r.HasDestination() {
		return &ValidationError{Reason: "Conta de destino só é permitida em transferências"}
	}

	switch r.Operation.Name() {
	case OpDeposit, OpWithdraw:
		if r.Value.Value() <= 0 {
			return &ValidationError{Reason: "Valor deve ser maior que zero"}
		}
	case OpBalance:
		if r.Value.Value() != 0 {
			return &ValidationError{Reason: "Valor deve ser zero para consulta de saldo"}
		}
	}

	return nil
}
