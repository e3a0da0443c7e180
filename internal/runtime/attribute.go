package runtime

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// RuntimeAttribute is a weight blob carried into the runtime graph. Weight
// holds the raw little-endian bytes copied from the model archive.
type RuntimeAttribute struct {
	Type   DataType
	Shape  []int
	Weight []byte
}

// Float32s decodes the weight bytes as float32 values.
func (a *RuntimeAttribute) Float32s() ([]float32, error) {
	if a.Type != DataTypeFloat32 {
		return nil, errors.Errorf("weight of type %s cannot be decoded as float32", a.Type)
	}
	out := make([]float32, len(a.Weight)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(a.Weight[i*4:]))
	}
	return out, nil
}

// ClearWeight drops the weight bytes, freeing the payload once it has been
// consumed by an execution backend.
func (a *RuntimeAttribute) ClearWeight() {
	a.Weight = nil
}
