package runtime

import "fmt"

// UnsupportedTypeError reports a type code the runtime cannot translate yet.
// Kind names what carried the code (operand, attribute or parameter),
// Operator the operator being translated and Name the offending member.
type UnsupportedTypeError struct {
	Kind     string
	Operator string
	Name     string
	Code     int32
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("operator %q: %s %q has unsupported type code %d", e.Operator, e.Kind, e.Name, e.Code)
}
