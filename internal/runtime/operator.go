package runtime

// RuntimeOperator is an execution-ready graph node. Input operands are
// reachable both by producer name and by position; OutputNames lists the
// consumers of each produced value, to be resolved to operator pointers by a
// later linking pass.
type RuntimeOperator struct {
	Name string
	Type string

	// InputOperands and InputOperandsSeq hold the same *RuntimeOperand
	// values, keyed by producer name and in declaration order.
	InputOperands    map[string]*RuntimeOperand
	InputOperandsSeq []*RuntimeOperand

	OutputNames []string

	Attributes map[string]*RuntimeAttribute
	Params     map[string]RuntimeParameter
}
