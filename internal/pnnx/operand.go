package pnnx

// Operand is a graph edge: the value produced by one operator and consumed by
// any number of downstream operators. A nil Producer marks an external graph
// input; it must be checked, never dereferenced blindly.
type Operand struct {
	Producer  *Operator
	Consumers []*Operator

	Type  DataType
	Shape []int // -1 encodes an unknown dimension ("?")
	Name  string

	Params map[string]Parameter
}

// RemoveConsumer removes every occurrence of op from the consumer list. It is
// a no-op when op does not consume this operand.
func (o *Operand) RemoveConsumer(op *Operator) {
	kept := o.Consumers[:0]
	for _, c := range o.Consumers {
		if c != op {
			kept = append(kept, c)
		}
	}
	o.Consumers = kept
}
