package runtime

// DataType is the runtime element type of an operand or attribute. Only
// float32 tensors are executable today; operands whose static type was never
// declared stay Unknown.
type DataType int32

const (
	DataTypeUnknown DataType = iota
	DataTypeFloat32
)

func (t DataType) String() string {
	switch t {
	case DataTypeUnknown:
		return "unknown"
	case DataTypeFloat32:
		return "float32"
	default:
		return "invalid"
	}
}
