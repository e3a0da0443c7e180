package pnnx

import (
	"bufio"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// paramMagic is the first line of every .param file.
const paramMagic = 7767517

// Parse builds the graph from .param text alone. Attribute payloads stay
// empty until Load resolves them from an archive, which makes Parse suitable
// for structural-only inspection.
//
// An input operand that no earlier line produced is created on demand with a
// nil producer and treated as an external graph input.
func (g *Graph) Parse(text string) error {
	scanner := bufio.NewScanner(strings.NewReader(text))
	// Operator lines carrying large array literals can exceed the default
	// token limit.
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return errors.New("param text is empty")
	}
	magic, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || magic != paramMagic {
		return errors.Errorf("unexpected magic number %q", strings.TrimSpace(scanner.Text()))
	}

	if !scanner.Scan() {
		return errors.New("param text is missing the count line")
	}
	counts := strings.Fields(scanner.Text())
	if len(counts) != 2 {
		return errors.Errorf("malformed count line %q", scanner.Text())
	}
	opCount, err := strconv.Atoi(counts[0])
	if err != nil {
		return errors.Wrapf(err, "bad operator count %q", counts[0])
	}
	// The operand count is part of the format but carries no information the
	// operator lines do not; it is validated as a number only.
	if _, err := strconv.Atoi(counts[1]); err != nil {
		return errors.Wrapf(err, "bad operand count %q", counts[1])
	}

	g.Ops = nil
	g.Operands = nil

	for i := 0; i < opCount; i++ {
		if !scanner.Scan() {
			return errors.Errorf("param text ends after %d of %d operators", i, opCount)
		}
		if err := g.parseOperatorLine(scanner.Text()); err != nil {
			return err
		}
	}
	return errors.Wrap(scanner.Err(), "failed to scan param text")
}

// parseOperatorLine decodes one operator line:
//
//	<type> <name> <#in> <#out> <input operands…> <output operands…> [key=value…]
//
// where key prefixes select the token kind: '@' attribute declaration,
// '$' input slot name, '#' operand shape/type, otherwise a parameter.
func (g *Graph) parseOperatorLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return errors.Errorf("malformed operator line %q", line)
	}

	numInputs, err := strconv.Atoi(fields[2])
	if err != nil {
		return errors.Wrapf(err, "bad input count for operator %q", fields[1])
	}
	numOutputs, err := strconv.Atoi(fields[3])
	if err != nil {
		return errors.Wrapf(err, "bad output count for operator %q", fields[1])
	}
	if numInputs < 0 || numOutputs < 0 || len(fields) < 4+numInputs+numOutputs {
		return errors.Errorf("operator %q declares %d inputs and %d outputs but the line has %d tokens",
			fields[1], numInputs, numOutputs, len(fields))
	}

	op := g.NewOperator(fields[0], fields[1])

	for _, name := range fields[4 : 4+numInputs] {
		opnd := g.GetOperand(name)
		if opnd == nil {
			// Produced by no earlier operator: an external graph input.
			opnd = g.NewOperand(name)
		}
		opnd.Consumers = append(opnd.Consumers, op)
		op.Inputs = append(op.Inputs, opnd)
	}
	for _, name := range fields[4+numInputs : 4+numInputs+numOutputs] {
		opnd := g.NewOperand(name)
		opnd.Producer = op
		op.Outputs = append(op.Outputs, opnd)
	}

	for _, tok := range fields[4+numInputs+numOutputs:] {
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key == "" {
			return errors.Errorf("operator %q: malformed token %q", op.Name, tok)
		}
		switch key[0] {
		case '@':
			attr, err := parseAttributeDecl(value)
			if err != nil {
				return errors.WithMessagef(err, "operator %q attribute %q", op.Name, key[1:])
			}
			op.Attrs[key[1:]] = attr
		case '$':
			if err := bindInputName(op, key[1:], value); err != nil {
				return err
			}
		case '#':
			if err := applyOperandDecl(op, key[1:], value); err != nil {
				return err
			}
		default:
			op.Params[key] = ParseParameter(value)
		}
	}
	return nil
}

// parseAttributeDecl parses an "(dims)dtype" attribute declaration into an
// attribute with an empty payload.
func parseAttributeDecl(value string) (*Attribute, error) {
	shape, typ, err := parseShapeExpr(value)
	if err != nil {
		return nil, err
	}
	return &Attribute{Type: typ, Shape: shape}, nil
}

// bindInputName records a "$key=operand" input slot name on op.
func bindInputName(op *Operator, key, operandName string) error {
	if len(op.InputNames) != len(op.Inputs) {
		op.InputNames = make([]string, len(op.Inputs))
	}
	for i, in := range op.Inputs {
		if in.Name == operandName {
			op.InputNames[i] = key
			return nil
		}
	}
	return errors.Errorf("operator %q: input name %q refers to unknown operand %q", op.Name, key, operandName)
}

// applyOperandDecl applies a "#operand=(dims)dtype" declaration to the named
// input or output operand of op.
func applyOperandDecl(op *Operator, name, value string) error {
	shape, typ, err := parseShapeExpr(value)
	if err != nil {
		return errors.WithMessagef(err, "operator %q operand %q", op.Name, name)
	}
	for _, opnd := range op.Inputs {
		if opnd.Name == name {
			opnd.Shape, opnd.Type = shape, typ
			return nil
		}
	}
	for _, opnd := range op.Outputs {
		if opnd.Name == name {
			opnd.Shape, opnd.Type = shape, typ
			return nil
		}
	}
	return errors.Errorf("operator %q: shape declared for unknown operand %q", op.Name, name)
}

// parseShapeExpr parses "(1,3,224,224)f32" style declarations. A "?"
// dimension is reported as -1.
func parseShapeExpr(value string) ([]int, DataType, error) {
	if len(value) < 2 || value[0] != '(' {
		return nil, DataTypeNull, errors.Errorf("malformed shape expression %q", value)
	}
	end := strings.IndexByte(value, ')')
	if end < 0 {
		return nil, DataTypeNull, errors.Errorf("malformed shape expression %q", value)
	}
	typ := dataTypeFromString(value[end+1:])

	body := value[1:end]
	if body == "" {
		return nil, typ, nil
	}
	dims := strings.Split(body, ",")
	shape := make([]int, 0, len(dims))
	for _, d := range dims {
		if d == "?" {
			shape = append(shape, -1)
			continue
		}
		n, err := strconv.Atoi(d)
		if err != nil {
			return nil, DataTypeNull, errors.Wrapf(err, "bad dimension %q in %q", d, value)
		}
		shape = append(shape, n)
	}
	return shape, typ, nil
}

// encode renders the graph back to .param text. Parameter and attribute keys
// are emitted in sorted order so repeated saves are byte-identical.
func (g *Graph) encode() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d\n", paramMagic)
	fmt.Fprintf(&sb, "%d %d\n", len(g.Ops), len(g.Operands))

	for _, op := range g.Ops {
		fmt.Fprintf(&sb, "%-24s %-24s %d %d", op.Type, op.Name, len(op.Inputs), len(op.Outputs))
		for _, in := range op.Inputs {
			fmt.Fprintf(&sb, " %s", in.Name)
		}
		for _, out := range op.Outputs {
			fmt.Fprintf(&sb, " %s", out.Name)
		}
		for i, key := range op.InputNames {
			if key != "" && i < len(op.Inputs) {
				fmt.Fprintf(&sb, " $%s=%s", key, op.Inputs[i].Name)
			}
		}
		for _, key := range sortedKeys(op.Params) {
			fmt.Fprintf(&sb, " %s=%s", key, op.Params[key])
		}
		for _, key := range sortedKeys(op.Attrs) {
			attr := op.Attrs[key]
			fmt.Fprintf(&sb, " @%s=%s", key, shapeExpr(attr.Shape, attr.Type))
		}
		// Inputs first, then outputs. Re-declaring an input repeats what its
		// producing line said, but an external input's declaration has no
		// other line to live on.
		for _, in := range op.Inputs {
			if len(in.Shape) > 0 || in.Type != DataTypeNull {
				fmt.Fprintf(&sb, " #%s=%s", in.Name, shapeExpr(in.Shape, in.Type))
			}
		}
		for _, out := range op.Outputs {
			if len(out.Shape) > 0 || out.Type != DataTypeNull {
				fmt.Fprintf(&sb, " #%s=%s", out.Name, shapeExpr(out.Shape, out.Type))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// shapeExpr renders a shape/type pair in "(dims)dtype" form.
func shapeExpr(shape []int, typ DataType) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, d := range shape {
		if i > 0 {
			sb.WriteByte(',')
		}
		if d == -1 {
			sb.WriteByte('?')
		} else {
			sb.WriteString(strconv.Itoa(d))
		}
	}
	sb.WriteByte(')')
	sb.WriteString(typ.String())
	return sb.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
