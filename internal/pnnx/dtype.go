package pnnx

// DataType encodes the scalar element type of an operand or attribute
// payload. The codes are the ones the .param format declares.
type DataType int32

const (
	DataTypeNull DataType = iota
	DataTypeFloat32
	DataTypeFloat64
	DataTypeFloat16
	DataTypeInt32
	DataTypeInt64
	DataTypeInt16
	DataTypeInt8
	DataTypeUint8
	DataTypeBool
	DataTypeComplex64
	DataTypeComplex128
	DataTypeComplex32
)

// ElemSize returns the size in bytes of one element, or 0 for DataTypeNull.
func (t DataType) ElemSize() int {
	switch t {
	case DataTypeFloat32, DataTypeInt32, DataTypeComplex32:
		return 4
	case DataTypeFloat64, DataTypeInt64, DataTypeComplex64:
		return 8
	case DataTypeFloat16, DataTypeInt16:
		return 2
	case DataTypeInt8, DataTypeUint8, DataTypeBool:
		return 1
	case DataTypeComplex128:
		return 16
	default:
		return 0
	}
}

// String returns the .param spelling of the type.
func (t DataType) String() string {
	switch t {
	case DataTypeFloat32:
		return "f32"
	case DataTypeFloat64:
		return "f64"
	case DataTypeFloat16:
		return "f16"
	case DataTypeInt32:
		return "i32"
	case DataTypeInt64:
		return "i64"
	case DataTypeInt16:
		return "i16"
	case DataTypeInt8:
		return "i8"
	case DataTypeUint8:
		return "u8"
	case DataTypeBool:
		return "bool"
	case DataTypeComplex64:
		return "cp64"
	case DataTypeComplex128:
		return "cp128"
	case DataTypeComplex32:
		return "cp32"
	default:
		return "null"
	}
}

// dataTypeFromString maps a .param type spelling back to its code. Unknown
// spellings map to DataTypeNull, matching the original format's leniency.
func dataTypeFromString(s string) DataType {
	switch s {
	case "f32":
		return DataTypeFloat32
	case "f64":
		return DataTypeFloat64
	case "f16":
		return DataTypeFloat16
	case "i32":
		return DataTypeInt32
	case "i64":
		return DataTypeInt64
	case "i16":
		return DataTypeInt16
	case "i8":
		return DataTypeInt8
	case "u8":
		return DataTypeUint8
	case "bool":
		return DataTypeBool
	case "cp64":
		return DataTypeComplex64
	case "cp128":
		return DataTypeComplex128
	case "cp32":
		return DataTypeComplex32
	default:
		return DataTypeNull
	}
}
