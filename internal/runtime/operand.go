package runtime

// RuntimeOperand is an execution-ready input value slot. One instance is
// shared between an operator's name-keyed map and its positional sequence,
// so mutating it through either view is visible through the other.
type RuntimeOperand struct {
	Name  string
	Type  DataType
	Shape []int
}
