package runtime

import (
	"slices"

	"github.com/NEDONION/kuiperdatawhale/internal/pnnx"
)

// translateOperator builds the runtime counterpart of one static operator.
func translateOperator(op *pnnx.Operator) (*RuntimeOperator, error) {
	rop := &RuntimeOperator{
		Name:          op.Name,
		Type:          op.Type,
		InputOperands: make(map[string]*RuntimeOperand, len(op.Inputs)),
		Attributes:    make(map[string]*RuntimeAttribute, len(op.Attrs)),
		Params:        make(map[string]RuntimeParameter, len(op.Params)),
	}

	if err := translateInputs(op, rop); err != nil {
		return nil, err
	}
	translateOutputs(op, rop)
	if err := translateAttrs(op, rop); err != nil {
		return nil, err
	}
	if err := translateParams(op, rop); err != nil {
		return nil, err
	}
	return rop, nil
}

// translateInputs converts every input operand. The runtime operand is named
// after its producer; an operand with no producer is an external graph input
// and keeps its own name. Each operand is inserted into both the name-keyed
// map and the positional sequence.
func translateInputs(op *pnnx.Operator, rop *RuntimeOperator) error {
	for _, in := range op.Inputs {
		name := in.Name
		if in.Producer != nil {
			name = in.Producer.Name
		}

		var typ DataType
		switch in.Type {
		case pnnx.DataTypeFloat32:
			typ = DataTypeFloat32
		case pnnx.DataTypeNull:
			typ = DataTypeUnknown
		default:
			return &UnsupportedTypeError{
				Kind:     "operand",
				Operator: op.Name,
				Name:     in.Name,
				Code:     int32(in.Type),
			}
		}

		ropnd := &RuntimeOperand{
			Name:  name,
			Type:  typ,
			Shape: slices.Clone(in.Shape),
		}
		rop.InputOperands[name] = ropnd
		rop.InputOperandsSeq = append(rop.InputOperandsSeq, ropnd)
	}
	return nil
}

// translateOutputs records the consumer names of every produced value.
// Resolving names to operator pointers is deferred to a linking pass.
func translateOutputs(op *pnnx.Operator, rop *RuntimeOperator) {
	for _, out := range op.Outputs {
		for _, consumer := range out.Consumers {
			rop.OutputNames = append(rop.OutputNames, consumer.Name)
		}
	}
}

// translateAttrs copies every weight attribute. Anything but float32 weights
// is unsupported.
func translateAttrs(op *pnnx.Operator, rop *RuntimeOperator) error {
	for name, attr := range op.Attrs {
		if attr.Type != pnnx.DataTypeFloat32 {
			return &UnsupportedTypeError{
				Kind:     "attribute",
				Operator: op.Name,
				Name:     name,
				Code:     int32(attr.Type),
			}
		}
		rop.Attributes[name] = &RuntimeAttribute{
			Type:   DataTypeFloat32,
			Shape:  slices.Clone(attr.Shape),
			Weight: slices.Clone(attr.Data),
		}
	}
	return nil
}

// translateParams converts every parameter into its runtime variant.
func translateParams(op *pnnx.Operator, rop *RuntimeOperator) error {
	for name, p := range op.Params {
		switch p.Type {
		case pnnx.ParameterNone:
			rop.Params[name] = UnknownParameter{}
		case pnnx.ParameterBool:
			rop.Params[name] = BoolParameter{Value: p.B}
		case pnnx.ParameterInt:
			rop.Params[name] = IntParameter{Value: p.I}
		case pnnx.ParameterFloat:
			rop.Params[name] = FloatParameter{Value: p.F}
		case pnnx.ParameterString:
			rop.Params[name] = StringParameter{Value: p.S}
		case pnnx.ParameterIntArray:
			rop.Params[name] = IntArrayParameter{Value: slices.Clone(p.AI)}
		case pnnx.ParameterFloatArray:
			rop.Params[name] = FloatArrayParameter{Value: slices.Clone(p.AF)}
		case pnnx.ParameterStringArray:
			rop.Params[name] = StringArrayParameter{Value: slices.Clone(p.AS)}
		default:
			return &UnsupportedTypeError{
				Kind:     "parameter",
				Operator: op.Name,
				Name:     name,
				Code:     int32(p.Type),
			}
		}
	}
	return nil
}
