// Package pnnx reads and writes PNNX model bundles.
//
// A bundle is a text graph description (.param) plus a stored-only ZIP
// archive of weight bytes (.bin). The package exposes the static graph IR:
// operators, operands with producer/consumer links, scalar parameters and
// raw weight attributes.
//
// Example usage:
//
//	g := pnnx.NewGraph()
//	if err := g.Load("model.param", "model.bin"); err != nil {
//	    log.Fatal(err)
//	}
//	for _, op := range g.Ops {
//	    fmt.Printf("%s (%s): %d inputs, %d outputs\n",
//	        op.Name, op.Type, len(op.Inputs), len(op.Outputs))
//	}
package pnnx

import (
	internalpnnx "github.com/NEDONION/kuiperdatawhale/internal/pnnx"
)

// Graph is a static computation graph owning its operators and operands.
type Graph = internalpnnx.Graph

// Operator is a graph node; see the package overview for the data model.
type Operator = internalpnnx.Operator

// Operand is a graph edge with producer/consumer links. Producer is nil for
// external graph inputs.
type Operand = internalpnnx.Operand

// Parameter is a tagged-union operator parameter.
type Parameter = internalpnnx.Parameter

// ParameterType tags which Parameter payload is meaningful.
type ParameterType = internalpnnx.ParameterType

// Attribute is a typed, shaped raw weight blob.
type Attribute = internalpnnx.Attribute

// DataType is the declared element type of an operand or attribute.
type DataType = internalpnnx.DataType

const (
	ParameterNone        = internalpnnx.ParameterNone
	ParameterBool        = internalpnnx.ParameterBool
	ParameterInt         = internalpnnx.ParameterInt
	ParameterFloat       = internalpnnx.ParameterFloat
	ParameterString      = internalpnnx.ParameterString
	ParameterIntArray    = internalpnnx.ParameterIntArray
	ParameterFloatArray  = internalpnnx.ParameterFloatArray
	ParameterStringArray = internalpnnx.ParameterStringArray
)

const (
	DataTypeNull       = internalpnnx.DataTypeNull
	DataTypeFloat32    = internalpnnx.DataTypeFloat32
	DataTypeFloat64    = internalpnnx.DataTypeFloat64
	DataTypeFloat16    = internalpnnx.DataTypeFloat16
	DataTypeInt32      = internalpnnx.DataTypeInt32
	DataTypeInt64      = internalpnnx.DataTypeInt64
	DataTypeInt16      = internalpnnx.DataTypeInt16
	DataTypeInt8       = internalpnnx.DataTypeInt8
	DataTypeUint8      = internalpnnx.DataTypeUint8
	DataTypeBool       = internalpnnx.DataTypeBool
	DataTypeComplex64  = internalpnnx.DataTypeComplex64
	DataTypeComplex128 = internalpnnx.DataTypeComplex128
	DataTypeComplex32  = internalpnnx.DataTypeComplex32
)

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return internalpnnx.NewGraph()
}

// NewAttribute builds a float32 attribute from a shape and flat values.
func NewAttribute(shape []int, values []float32) *Attribute {
	return internalpnnx.NewAttribute(shape, values)
}

// ParseParameter parses one .param value literal into a Parameter.
func ParseParameter(text string) Parameter {
	return internalpnnx.ParseParameter(text)
}

// Concat concatenates two attributes along dimension 0.
func Concat(a, b *Attribute) (*Attribute, error) {
	return internalpnnx.Concat(a, b)
}
