package runtime

import "github.com/NEDONION/kuiperdatawhale/internal/pnnx"

// RuntimeParameter is one translated operator parameter. Exactly one concrete
// variant exists per parameter kind; callers type-switch on the variant and
// read its Value field.
type RuntimeParameter interface {
	ParameterType() pnnx.ParameterType
}

// UnknownParameter marks a parameter whose value carried no type (None).
type UnknownParameter struct{}

// BoolParameter holds a boolean parameter value.
type BoolParameter struct{ Value bool }

// IntParameter holds an integer parameter value.
type IntParameter struct{ Value int }

// FloatParameter holds a float parameter value.
type FloatParameter struct{ Value float32 }

// StringParameter holds a string parameter value.
type StringParameter struct{ Value string }

// IntArrayParameter holds an integer list parameter value.
type IntArrayParameter struct{ Value []int }

// FloatArrayParameter holds a float list parameter value.
type FloatArrayParameter struct{ Value []float32 }

// StringArrayParameter holds a string list parameter value.
type StringArrayParameter struct{ Value []string }

func (UnknownParameter) ParameterType() pnnx.ParameterType     { return pnnx.ParameterNone }
func (BoolParameter) ParameterType() pnnx.ParameterType        { return pnnx.ParameterBool }
func (IntParameter) ParameterType() pnnx.ParameterType         { return pnnx.ParameterInt }
func (FloatParameter) ParameterType() pnnx.ParameterType       { return pnnx.ParameterFloat }
func (StringParameter) ParameterType() pnnx.ParameterType      { return pnnx.ParameterString }
func (IntArrayParameter) ParameterType() pnnx.ParameterType    { return pnnx.ParameterIntArray }
func (FloatArrayParameter) ParameterType() pnnx.ParameterType  { return pnnx.ParameterFloatArray }
func (StringArrayParameter) ParameterType() pnnx.ParameterType { return pnnx.ParameterStringArray }
