package pnnx

import (
	"bytes"
	"encoding/binary"
	"math"
	"slices"

	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Attribute is a typed, shaped raw weight blob attached to an operator. The
// payload is interpreted according to Type and Shape; a loaded attribute
// holds exactly Elements()*Type.ElemSize() bytes.
type Attribute struct {
	Type  DataType
	Shape []int
	Data  []byte
}

// NewAttribute builds a float32 attribute from a shape and flat values.
func NewAttribute(shape []int, values []float32) *Attribute {
	data := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	return &Attribute{
		Type:  DataTypeFloat32,
		Shape: slices.Clone(shape),
		Data:  data,
	}
}

// Elements returns the number of scalar elements the shape describes.
func (a *Attribute) Elements() int {
	if len(a.Shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// Float32s decodes the payload as float32 values: f32 is read directly, f64
// narrowed and f16 widened. Other element types are not decodable.
func (a *Attribute) Float32s() ([]float32, error) {
	switch a.Type {
	case DataTypeFloat32:
		out := make([]float32, len(a.Data)/4)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(a.Data[i*4:]))
		}
		return out, nil
	case DataTypeFloat64:
		out := make([]float32, len(a.Data)/8)
		for i := range out {
			out[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(a.Data[i*8:])))
		}
		return out, nil
	case DataTypeFloat16:
		out := make([]float32, len(a.Data)/2)
		for i := range out {
			out[i] = float16.Frombits(binary.LittleEndian.Uint16(a.Data[i*2:])).Float32()
		}
		return out, nil
	default:
		return nil, errors.Errorf("attribute type %s cannot be decoded as float32", a.Type)
	}
}

// Equal reports whether two attributes have identical type, shape and bytes.
func (a *Attribute) Equal(b *Attribute) bool {
	return a.Type == b.Type && slices.Equal(a.Shape, b.Shape) && bytes.Equal(a.Data, b.Data)
}

// Concat concatenates two attributes along dimension 0. Both must share the
// element type and every dimension past the first; the payloads are appended
// whole, so element boundaries are preserved.
func Concat(a, b *Attribute) (*Attribute, error) {
	if a.Type != b.Type {
		return nil, errors.Errorf("cannot concat attributes of type %s and %s", a.Type, b.Type)
	}
	if len(a.Shape) == 0 || len(a.Shape) != len(b.Shape) {
		return nil, errors.Errorf("cannot concat attributes of rank %d and %d", len(a.Shape), len(b.Shape))
	}
	if !slices.Equal(a.Shape[1:], b.Shape[1:]) {
		return nil, errors.Errorf("cannot concat attributes: trailing dimensions differ (%v vs %v)", a.Shape, b.Shape)
	}

	shape := slices.Clone(a.Shape)
	shape[0] += b.Shape[0]

	data := make([]byte, 0, len(a.Data)+len(b.Data))
	data = append(data, a.Data...)
	data = append(data, b.Data...)

	return &Attribute{Type: a.Type, Shape: shape, Data: data}, nil
}
