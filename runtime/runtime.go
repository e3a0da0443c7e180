// Package runtime builds execution-ready operator graphs from PNNX model
// bundles.
//
// Example usage:
//
//	g := runtime.NewRuntimeGraph("model.param", "model.bin")
//	if err := g.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	for _, op := range g.Operators() {
//	    fmt.Printf("%s (%s)\n", op.Name, op.Type)
//	}
package runtime

import (
	internalruntime "github.com/NEDONION/kuiperdatawhale/internal/runtime"
)

// RuntimeGraph loads a bundle and translates it into runtime operators.
type RuntimeGraph = internalruntime.RuntimeGraph

// RuntimeOperator is one execution-ready graph node.
type RuntimeOperator = internalruntime.RuntimeOperator

// RuntimeOperand is an execution-ready input value slot.
type RuntimeOperand = internalruntime.RuntimeOperand

// RuntimeAttribute is a weight blob carried into the runtime graph.
type RuntimeAttribute = internalruntime.RuntimeAttribute

// RuntimeParameter is one translated operator parameter; type-switch on the
// concrete variant to read its value.
type RuntimeParameter = internalruntime.RuntimeParameter

// Parameter variants, one per parameter kind.
type (
	UnknownParameter     = internalruntime.UnknownParameter
	BoolParameter        = internalruntime.BoolParameter
	IntParameter         = internalruntime.IntParameter
	FloatParameter       = internalruntime.FloatParameter
	StringParameter      = internalruntime.StringParameter
	IntArrayParameter    = internalruntime.IntArrayParameter
	FloatArrayParameter  = internalruntime.FloatArrayParameter
	StringArrayParameter = internalruntime.StringArrayParameter
)

// DataType is the runtime element type of an operand or attribute.
type DataType = internalruntime.DataType

const (
	DataTypeUnknown = internalruntime.DataTypeUnknown
	DataTypeFloat32 = internalruntime.DataTypeFloat32
)

// UnsupportedTypeError reports a type code the runtime cannot translate.
type UnsupportedTypeError = internalruntime.UnsupportedTypeError

// Options configures graph translation.
type Options = internalruntime.Options

// DefaultOptions returns the default translation options.
func DefaultOptions() Options {
	return internalruntime.DefaultOptions()
}

// NewRuntimeGraph returns an uninitialized runtime graph for the given
// bundle paths. Call Init before using it.
func NewRuntimeGraph(paramPath, binPath string, opts ...Options) *RuntimeGraph {
	return internalruntime.NewRuntimeGraph(paramPath, binPath, opts...)
}
