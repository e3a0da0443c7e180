package runtime_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NEDONION/kuiperdatawhale/pnnx"
	"github.com/NEDONION/kuiperdatawhale/runtime"
)

func TestPublicSurface(t *testing.T) {
	// Build a bundle with the static IR, then load it through the runtime.
	g := pnnx.NewGraph()
	op := g.NewOperator("nn.Linear", "linear")
	op.Params["bias"] = pnnx.ParseParameter("True")
	op.Params["in_features"] = pnnx.ParseParameter("2")
	op.Attrs["weight"] = pnnx.NewAttribute([]int{2, 2}, []float32{1, 2, 3, 4})
	out := g.NewOperand("0")
	out.Producer = op
	op.Outputs = append(op.Outputs, out)

	dir := t.TempDir()
	paramPath := filepath.Join(dir, "m.param")
	binPath := filepath.Join(dir, "m.bin")
	require.NoError(t, g.Save(paramPath, binPath))

	rg := runtime.NewRuntimeGraph(paramPath, binPath, runtime.DefaultOptions())
	require.NoError(t, rg.Init())
	require.Len(t, rg.Operators(), 1)

	linear := rg.GetOperator("linear")
	require.NotNil(t, linear)
	assert.Equal(t, runtime.BoolParameter{Value: true}, linear.Params["bias"])
	assert.Equal(t, runtime.IntParameter{Value: 2}, linear.Params["in_features"])

	vals, err := linear.Attributes["weight"].Float32s()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, vals)
}
