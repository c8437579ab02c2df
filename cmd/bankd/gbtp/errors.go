package gbtp

import "fmt"

// MalformedError reports a required key missing from the wire text.
type MalformedError struct {
	Key string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("Mensagem malformada: campo %s ausente", e.Key)
}

// ValidationError reports a field or cross-field rule violation. The reason
// is wire-visible, it becomes the MESSAGE of the error response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
