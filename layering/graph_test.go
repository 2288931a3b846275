package layering

import (
	"testing"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diamond() *Graph[string] {
	g := NewGraph[string]()
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	g.AddEdge("b", "d")
	g.AddEdge("c", "d")
	g.AddEdge("d", "e")
	g.AddEdge("a", "e")
	g.AddVertex("z")
	return g
}

func TestGraphQueries(t *testing.T) {
	g := diamond()
	assert.True(t, g.Contains("d"))
	assert.False(t, g.Contains("y"))
	assert.Equal(t, 6, g.NbVertices())
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "z"}, g.Vertices())
	assert.Equal(t, []string{"b", "c", "e"}, g.EdgesOutOf("a"))
	assert.Equal(t, []string{"a", "d"}, g.EdgesInto("e"))
	assert.Empty(t, g.EdgesInto("a"))
}

func TestTopologicalSort(t *testing.T) {
	order, err := diamond().TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "z", "b", "c", "d", "e"}, order)
}

func TestSortGraphByLevels(t *testing.T) {
	g := diamond()
	levels, err := g.SortGraphByLevels()
	require.NoError(t, err)
	// e waits for d even though a alone would allow level 1; z has no users
	// and stays with the sources
	assert.Equal(t, [][]string{{"a", "z"}, {"b", "c"}, {"d"}, {"e"}}, levels)

	last := LastUseLevels(g, levels)
	assert.Equal(t, map[string]int{"a": 3, "b": 2, "c": 2, "d": 3}, last)
}

func TestCycle(t *testing.T) {
	g := NewGraph[int]()
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	g.AddEdge(3, 2)
	_, err := g.TopologicalSort()
	require.ErrorIs(t, err, ir.ErrInvalidArgument)
	_, err = g.SortGraphByLevels()
	require.ErrorIs(t, err, ir.ErrInvalidArgument)
}
