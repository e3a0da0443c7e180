package pnnx

import (
	"os"
	"slices"

	"github.com/pkg/errors"

	"github.com/NEDONION/kuiperdatawhale/internal/storezip"
)

// Graph owns every operator and operand of one static computation graph.
// Share a Graph by pointer; it is not meant to be copied.
type Graph struct {
	Ops      []*Operator
	Operands []*Operand
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

func newOperator(typ, name string) *Operator {
	return &Operator{
		Type:   typ,
		Name:   name,
		Params: make(map[string]Parameter),
		Attrs:  make(map[string]*Attribute),
	}
}

// NewOperator appends an operator with empty edge lists. Callers wire the
// edges afterwards; this is an insertion point, not an auto-wiring
// constructor.
func (g *Graph) NewOperator(typ, name string) *Operator {
	op := newOperator(typ, name)
	g.Ops = append(g.Ops, op)
	return op
}

// NewOperatorBefore inserts an operator with empty edge lists immediately
// before cur. When cur is not in the graph the operator is appended.
func (g *Graph) NewOperatorBefore(typ, name string, cur *Operator) *Operator {
	op := newOperator(typ, name)
	i := g.indexOf(cur)
	if i < 0 {
		i = len(g.Ops)
	}
	g.Ops = slices.Insert(g.Ops, i, op)
	return op
}

// NewOperatorAfter inserts an operator with empty edge lists immediately
// after cur. When cur is not in the graph the operator is appended.
func (g *Graph) NewOperatorAfter(typ, name string, cur *Operator) *Operator {
	op := newOperator(typ, name)
	i := g.indexOf(cur)
	if i < 0 {
		i = len(g.Ops) - 1
	}
	g.Ops = slices.Insert(g.Ops, i+1, op)
	return op
}

func (g *Graph) indexOf(cur *Operator) int {
	for i, op := range g.Ops {
		if op == cur {
			return i
		}
	}
	return -1
}

// NewOperand creates a named operand with no producer and registers it.
func (g *Graph) NewOperand(name string) *Operand {
	opnd := &Operand{
		Name:   name,
		Params: make(map[string]Parameter),
	}
	g.Operands = append(g.Operands, opnd)
	return opnd
}

// GetOperand returns the operand with the given name, or nil.
func (g *Graph) GetOperand(name string) *Operand {
	for _, opnd := range g.Operands {
		if opnd.Name == name {
			return opnd
		}
	}
	return nil
}

// Load reads the .param text from paramPath, then resolves every declared
// attribute's bytes from the archive at binPath. The archive entry for an
// attribute is named "<operator>.<attribute>".
func (g *Graph) Load(paramPath, binPath string) error {
	if paramPath == "" || binPath == "" {
		return errors.New("param path or bin path is empty")
	}

	text, err := os.ReadFile(paramPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read param file %q", paramPath)
	}
	if err := g.Parse(string(text)); err != nil {
		return errors.WithMessagef(err, "failed to parse %q", paramPath)
	}

	r, err := storezip.OpenReader(binPath)
	if err != nil {
		return errors.Wrapf(err, "failed to open bin file %q", binPath)
	}
	defer r.Close()

	return g.loadAttributes(r)
}

// LoadArchive loads a single-file bundle: the .param text is the named entry
// of the archive at path, and the weights are its sibling entries.
func (g *Graph) LoadArchive(path, paramEntry string) error {
	if path == "" || paramEntry == "" {
		return errors.New("archive path or param entry name is empty")
	}

	r, err := storezip.OpenReader(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open archive %q", path)
	}
	defer r.Close()

	size, err := r.FileSize(paramEntry)
	if err != nil {
		return errors.Wrapf(err, "param entry in %q", path)
	}
	text := make([]byte, size)
	if err := r.ReadFile(paramEntry, text); err != nil {
		return errors.Wrapf(err, "param entry in %q", path)
	}
	if err := g.Parse(string(text)); err != nil {
		return errors.WithMessagef(err, "failed to parse entry %q of %q", paramEntry, path)
	}

	return g.loadAttributes(r)
}

// loadAttributes fetches the byte payload of every declared attribute.
func (g *Graph) loadAttributes(r *storezip.Reader) error {
	for _, op := range g.Ops {
		for name, attr := range op.Attrs {
			entry := op.Name + "." + name

			size, err := r.FileSize(entry)
			if err != nil {
				return errors.Wrapf(err, "weight of operator %q", op.Name)
			}
			if want, ok := attr.declaredByteSize(); ok && size != want {
				return errors.Errorf("weight %q holds %d bytes, the declared shape %v (%s) needs %d",
					entry, size, attr.Shape, attr.Type, want)
			}

			data := make([]byte, size)
			if err := r.ReadFile(entry, data); err != nil {
				return errors.Wrapf(err, "weight of operator %q", op.Name)
			}
			attr.Data = data
		}
	}
	return nil
}

// declaredByteSize returns the payload size the shape and type imply. The
// second result is false when a dimension is unknown, in which case the size
// cannot be checked.
func (a *Attribute) declaredByteSize() (int, bool) {
	elemSize := a.Type.ElemSize()
	if elemSize == 0 || len(a.Shape) == 0 {
		return 0, false
	}
	n := 1
	for _, d := range a.Shape {
		if d < 0 {
			return 0, false
		}
		n *= d
	}
	return n * elemSize, true
}

// Save writes the .param text to paramPath and every attribute payload into
// the archive at binPath, each under its "<operator>.<attribute>" name.
// Attribute order within an operator is deterministic (sorted by name).
func (g *Graph) Save(paramPath, binPath string) error {
	if paramPath == "" || binPath == "" {
		return errors.New("param path or bin path is empty")
	}

	if err := os.WriteFile(paramPath, []byte(g.encode()), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write param file %q", paramPath)
	}

	w, err := storezip.NewWriter(binPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create bin file %q", binPath)
	}
	for _, op := range g.Ops {
		for _, name := range sortedKeys(op.Attrs) {
			if err := w.WriteFile(op.Name+"."+name, op.Attrs[name].Data); err != nil {
				_ = w.Close()
				return errors.Wrapf(err, "weight of operator %q", op.Name)
			}
		}
	}
	return errors.Wrapf(w.Close(), "failed to finalize bin file %q", binPath)
}
