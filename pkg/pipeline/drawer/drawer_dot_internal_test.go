package drawer

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-velgen/pkg/pipeline/measure"
)

func chainDrawer(t *testing.T, names ...string) *DOTDrawer {
	t.Helper()
	d := NewDOTDrawer(filepath.Join(t.TempDir(), "pipeline.dot"))
	for i, name := range names {
		require.NoError(t, d.AddStep(name))
		if i > 0 {
			require.NoError(t, d.AddLink(names[i-1], name))
		}
	}

	return d
}

func TestDOTDrawerIdempotent(t *testing.T) {
	d := chainDrawer(t, "start", "0 flat_layer", "end")

	require.NoError(t, d.AddStep("0 flat_layer"))
	require.NoError(t, d.AddLink("start", "0 flat_layer"))

	order, err := d.graph.Order()
	require.NoError(t, err)
	assert.Equal(t, 3, order)
	size, err := d.graph.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestDOTDrawerIsInner(t *testing.T) {
	d := chainDrawer(t, "start", "0 flat_layer", "end")

	assert.False(t, d.isInner("start"))
	assert.True(t, d.isInner("0 flat_layer"))
	assert.True(t, d.isInner("end"))
	assert.False(t, d.isInner("missing"))
}

func TestDOTDrawerAddMeasure(t *testing.T) {
	d := chainDrawer(t, "start", "0 flat_layer", "1 cosine_fold", "end")
	msr := measure.NewDefaultMeasure()
	msr.AddMetric("start")
	msr.AddMetric("0 flat_layer").AddDuration(time.Microsecond)
	msr.AddMetric("1 cosine_fold").AddDuration(5 * time.Microsecond)

	require.NoError(t, d.AddMeasure(msr))

	fast, err := d.graph.Edge("start", "0 flat_layer")
	require.NoError(t, err)
	slow, err := d.graph.Edge("0 flat_layer", "1 cosine_fold")
	require.NoError(t, err)
	assert.NotEmpty(t, fast.Properties.Attributes["color"])
	assert.NotEmpty(t, slow.Properties.Attributes["color"])
	assert.NotEqual(t, fast.Properties.Attributes["color"], slow.Properties.Attributes["color"])
	assert.Equal(t, "5µs", slow.Properties.Attributes["label"])
}

func TestDOTDrawerWriteTo(t *testing.T) {
	d := chainDrawer(t, "start", "0 flat_layer", "end")
	require.NoError(t, d.SetTotalTime("end", 2*time.Millisecond))
	require.Error(t, d.SetTotalTime("missing", time.Second))

	buf := &bytes.Buffer{}
	require.NoError(t, d.WriteTo(buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "strict digraph {"))
	assert.Contains(t, out, `"start" -> "0 flat_layer"`)
	assert.Contains(t, out, `"0 flat_layer" -> "end"`)
	assert.Contains(t, out, "2ms")
}

func TestGenerateDOTUndirected(t *testing.T) {
	g := graph.New(graph.StringHash)
	require.NoError(t, g.AddVertex("a"))
	require.NoError(t, g.AddVertex("b"))
	require.NoError(t, g.AddEdge("a", "b"))

	desc, err := generateDOT(g, GraphAttribute("rankdir", "LR"))
	require.NoError(t, err)
	assert.Equal(t, "graph", desc.GraphType)
	assert.Equal(t, "--", desc.EdgeOperator)
	assert.Equal(t, "LR", desc.Attributes["rankdir"])
}
