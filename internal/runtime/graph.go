package runtime

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/NEDONION/kuiperdatawhale/internal/pnnx"
)

// Options configures graph translation.
type Options struct {
	// SkipUnsupported drops operators carrying unsupported type codes
	// instead of failing the whole Init (default: false = fail hard).
	SkipUnsupported bool
}

// DefaultOptions returns the default translation options.
func DefaultOptions() Options {
	return Options{SkipUnsupported: false}
}

// RuntimeGraph loads a .param/.bin bundle and translates it into runtime
// operators. A zero-value RuntimeGraph is not usable; construct one with
// NewRuntimeGraph, then call Init. Init may be called again after changing
// the paths; it rebuilds the operator list from scratch.
type RuntimeGraph struct {
	paramPath string
	binPath   string
	opts      Options

	graph     *pnnx.Graph
	operators []*RuntimeOperator
	byName    map[string]*RuntimeOperator
}

// NewRuntimeGraph returns an uninitialized runtime graph for the given
// bundle paths.
func NewRuntimeGraph(paramPath, binPath string, opts ...Options) *RuntimeGraph {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	return &RuntimeGraph{
		paramPath: paramPath,
		binPath:   binPath,
		opts:      opt,
	}
}

// ParamPath returns the .param file path.
func (g *RuntimeGraph) ParamPath() string { return g.paramPath }

// BinPath returns the .bin archive path.
func (g *RuntimeGraph) BinPath() string { return g.binPath }

// SetParamPath replaces the .param file path used by the next Init.
func (g *RuntimeGraph) SetParamPath(path string) { g.paramPath = path }

// SetBinPath replaces the .bin archive path used by the next Init.
func (g *RuntimeGraph) SetBinPath(path string) { g.binPath = path }

// Init loads the bundle and translates every operator. On failure the graph
// keeps no partial state and a later Init starts over.
func (g *RuntimeGraph) Init() error {
	if g.paramPath == "" || g.binPath == "" {
		return errors.New("param path or bin path is empty")
	}

	graph := pnnx.NewGraph()
	if err := graph.Load(g.paramPath, g.binPath); err != nil {
		g.reset()
		return errors.WithMessage(err, "failed to load model bundle")
	}
	if len(graph.Ops) == 0 {
		g.reset()
		return errors.Errorf("model %q contains no operators", g.paramPath)
	}

	// Discard any previous build before translating.
	g.graph = graph
	g.operators = nil
	g.byName = make(map[string]*RuntimeOperator, len(graph.Ops))

	for _, op := range graph.Ops {
		rop, err := translateOperator(op)
		if err != nil {
			if g.opts.SkipUnsupported {
				klog.Warningf("skipping operator %q (%s): %v", op.Name, op.Type, err)
				continue
			}
			g.reset()
			return err
		}
		g.operators = append(g.operators, rop)
		g.byName[rop.Name] = rop
	}

	klog.V(2).Infof("initialized runtime graph from %q: %d operators", g.paramPath, len(g.operators))
	return nil
}

// reset drops everything a previous Init built.
func (g *RuntimeGraph) reset() {
	g.graph = nil
	g.operators = nil
	g.byName = nil
}

// Operators returns the translated operators in source order. The slice is
// owned by the graph; callers must not modify it.
func (g *RuntimeGraph) Operators() []*RuntimeOperator {
	return g.operators
}

// GetOperator returns the operator with the given name, or nil.
func (g *RuntimeGraph) GetOperator(name string) *RuntimeOperator {
	return g.byName[name]
}
