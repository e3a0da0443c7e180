package pnnx

// Operator is a graph node: ordered input and output operands, scalar
// parameters and raw weight attributes. Type is the operator kind (say
// "nn.Linear"), Name its unique identifier within the graph.
type Operator struct {
	Inputs  []*Operand
	Outputs []*Operand

	Type string
	Name string

	// InputNames carries the per-slot input names ($key=operand tokens),
	// aligned with Inputs. Slots without a declared name hold "".
	InputNames []string

	Params map[string]Parameter
	Attrs  map[string]*Attribute
}
