package pnnx

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ParameterType identifies which payload of a Parameter is meaningful.
type ParameterType int32

const (
	ParameterNone ParameterType = iota
	ParameterBool
	ParameterInt
	ParameterFloat
	ParameterString
	ParameterIntArray
	ParameterFloatArray
	ParameterStringArray
)

// String returns a short name for the parameter type.
func (t ParameterType) String() string {
	switch t {
	case ParameterNone:
		return "none"
	case ParameterBool:
		return "bool"
	case ParameterInt:
		return "int"
	case ParameterFloat:
		return "float"
	case ParameterString:
		return "string"
	case ParameterIntArray:
		return "int[]"
	case ParameterFloatArray:
		return "float[]"
	case ParameterStringArray:
		return "string[]"
	default:
		return fmt.Sprintf("ParameterType(%d)", int32(t))
	}
}

// Parameter is a closed tagged union holding one operator parameter. The Type
// tag decides which payload field is meaningful; ParameterNone means absent.
type Parameter struct {
	Type ParameterType

	B  bool
	I  int
	F  float32
	S  string
	AI []int
	AF []float32
	AS []string
}

// BoolParameter returns a bool-typed parameter.
func BoolParameter(b bool) Parameter { return Parameter{Type: ParameterBool, B: b} }

// IntParameter returns an int-typed parameter.
func IntParameter(i int) Parameter { return Parameter{Type: ParameterInt, I: i} }

// FloatParameter returns a float-typed parameter.
func FloatParameter(f float32) Parameter { return Parameter{Type: ParameterFloat, F: f} }

// StringParameter returns a string-typed parameter.
func StringParameter(s string) Parameter { return Parameter{Type: ParameterString, S: s} }

// IntArrayParameter returns an int-array parameter.
func IntArrayParameter(v ...int) Parameter { return Parameter{Type: ParameterIntArray, AI: v} }

// FloatArrayParameter returns a float-array parameter.
func FloatArrayParameter(v ...float32) Parameter { return Parameter{Type: ParameterFloatArray, AF: v} }

// StringArrayParameter returns a string-array parameter.
func StringArrayParameter(v ...string) Parameter { return Parameter{Type: ParameterStringArray, AS: v} }

// ParseParameter decodes a .param value literal. Unparseable tokens fall back
// to plain strings; the grammar never fails.
func ParseParameter(text string) Parameter {
	switch text {
	case "None", "()", "[]":
		return Parameter{}
	case "True", "true":
		return BoolParameter(true)
	case "False", "false":
		return BoolParameter(false)
	}

	if len(text) >= 2 && (text[0] == '(' && text[len(text)-1] == ')' ||
		text[0] == '[' && text[len(text)-1] == ']') {
		return parseListParameter(text[1 : len(text)-1])
	}

	if isNumericToken(text) {
		if strings.ContainsAny(text, ".e") {
			if f, err := strconv.ParseFloat(text, 32); err == nil {
				return FloatParameter(float32(f))
			}
		} else if i, err := strconv.Atoi(text); err == nil {
			return IntParameter(i)
		}
	}
	return StringParameter(text)
}

// isNumericToken reports whether a token starts like a numeric literal:
// a digit, or a minus sign followed by a digit.
func isNumericToken(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	return s[0] == '-' && len(s) > 1 && s[1] >= '0' && s[1] <= '9'
}

// parseListParameter classifies a comma list as a whole: any non-numeric
// element makes it a string array, any floating element a float array,
// otherwise it is an int array.
func parseListParameter(body string) Parameter {
	elems := strings.Split(body, ",")

	kind := ParameterIntArray
	for _, e := range elems {
		if !isNumericToken(e) {
			kind = ParameterStringArray
			break
		}
		if strings.ContainsAny(e, ".e") {
			kind = ParameterFloatArray
		}
	}

	switch kind {
	case ParameterIntArray:
		vals := make([]int, 0, len(elems))
		for _, e := range elems {
			i, err := strconv.Atoi(e)
			if err != nil {
				return StringArrayParameter(elems...)
			}
			vals = append(vals, i)
		}
		return IntArrayParameter(vals...)
	case ParameterFloatArray:
		vals := make([]float32, 0, len(elems))
		for _, e := range elems {
			f, err := strconv.ParseFloat(e, 32)
			if err != nil {
				return StringArrayParameter(elems...)
			}
			vals = append(vals, float32(f))
		}
		return FloatArrayParameter(vals...)
	default:
		return StringArrayParameter(elems...)
	}
}

// Equal reports whether two parameters hold the same type and value. Arrays
// compare element-wise.
func (p Parameter) Equal(q Parameter) bool {
	if p.Type != q.Type {
		return false
	}
	switch p.Type {
	case ParameterNone:
		return true
	case ParameterBool:
		return p.B == q.B
	case ParameterInt:
		return p.I == q.I
	case ParameterFloat:
		return p.F == q.F
	case ParameterString:
		return p.S == q.S
	case ParameterIntArray:
		return slices.Equal(p.AI, q.AI)
	case ParameterFloatArray:
		return slices.Equal(p.AF, q.AF)
	case ParameterStringArray:
		return slices.Equal(p.AS, q.AS)
	default:
		return false
	}
}

// String renders the parameter in .param literal syntax, the exact inverse of
// ParseParameter for values produced by the saver.
func (p Parameter) String() string {
	switch p.Type {
	case ParameterBool:
		if p.B {
			return "True"
		}
		return "False"
	case ParameterInt:
		return strconv.Itoa(p.I)
	case ParameterFloat:
		return fmt.Sprintf("%e", p.F)
	case ParameterString:
		return p.S
	case ParameterIntArray:
		elems := make([]string, len(p.AI))
		for i, v := range p.AI {
			elems[i] = strconv.Itoa(v)
		}
		return "(" + strings.Join(elems, ",") + ")"
	case ParameterFloatArray:
		elems := make([]string, len(p.AF))
		for i, v := range p.AF {
			elems[i] = fmt.Sprintf("%e", v)
		}
		return "(" + strings.Join(elems, ",") + ")"
	case ParameterStringArray:
		return "(" + strings.Join(p.AS, ",") + ")"
	default:
		return "None"
	}
}
