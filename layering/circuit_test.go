package layering

import (
	"testing"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/builder"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelSort(t *testing.T) {
	b := builder.New()
	x := b.Param("a", ir.Bits(1))
	y := b.Param("b", ir.Bits(1))
	sx := b.BitSlice(x, 0, 1)
	sy := b.BitSlice(y, 0, 1)
	and := b.And(sx, sy)
	not := b.Not(and)
	g, err := b.Finalize(not)
	require.NoError(t, err)

	levels, err := LevelSort(g)
	require.NoError(t, err)
	assert.Equal(t, [][]ir.NodeID{{x.ID, y.ID}, {sx.ID, sy.ID}, {and.ID}, {not.ID}}, levels)

	names, err := LevelSortedCellNames(g)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"bit_slice.3", "bit_slice.4"}, {"and.5"}, {"not.6"}}, names)

	order, err := TopoSortedCellNames(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "bit_slice.3", "bit_slice.4", "and.5", "not.6"}, order)
}

func TestLevelSortCoversAllNodes(t *testing.T) {
	b := builder.New()
	x := b.Param("x", ir.Bits(8))
	y := b.Param("y", ir.Bits(8))
	g, err := b.Finalize(b.Add(x, y))
	require.NoError(t, err)

	levels, err := LevelSort(g)
	require.NoError(t, err)
	again, err := LevelSort(g)
	require.NoError(t, err)
	require.Equal(t, levels, again)

	level := make(map[ir.NodeID]int)
	total := 0
	for i, ids := range levels {
		total += len(ids)
		for _, id := range ids {
			level[id] = i
		}
	}
	require.Equal(t, g.NbNodes(), total)
	for _, n := range g.Nodes() {
		for _, o := range n.Operands {
			require.Less(t, level[o.ID], level[n.ID], "%s", n.String())
		}
	}

	order, err := TopoSort(g)
	require.NoError(t, err)
	require.Len(t, order, g.NbNodes())
}
