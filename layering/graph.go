// Package layering orders the nodes of a circuit for code generation: a total
// topological order, or a partition into levels whose nodes only depend on
// earlier levels and can therefore be emitted as parallel batches.
package layering

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
)

// Graph is a directed graph over comparable vertices. Every query returns
// vertices in ascending order so that the sorts below are deterministic.
type Graph[V cmp.Ordered] struct {
	vertices map[V]struct{}
	out      map[V]map[V]struct{}
	in       map[V]map[V]struct{}
}

func NewGraph[V cmp.Ordered]() *Graph[V] {
	return &Graph[V]{
		vertices: make(map[V]struct{}),
		out:      make(map[V]map[V]struct{}),
		in:       make(map[V]map[V]struct{}),
	}
}

func (g *Graph[V]) AddVertex(v V) {
	g.vertices[v] = struct{}{}
}

// AddEdge adds an edge from -> to, meaning that to depends on from.
// Both vertices are added if needed.
func (g *Graph[V]) AddEdge(from, to V) {
	g.AddVertex(from)
	g.AddVertex(to)
	if g.out[from] == nil {
		g.out[from] = make(map[V]struct{})
	}
	if g.in[to] == nil {
		g.in[to] = make(map[V]struct{})
	}
	g.out[from][to] = struct{}{}
	g.in[to][from] = struct{}{}
}

func (g *Graph[V]) Contains(v V) bool {
	_, ok := g.vertices[v]
	return ok
}

func (g *Graph[V]) NbVertices() int {
	return len(g.vertices)
}

func (g *Graph[V]) Vertices() []V {
	return sortedKeys(g.vertices)
}

func (g *Graph[V]) EdgesOutOf(v V) []V {
	return sortedKeys(g.out[v])
}

func (g *Graph[V]) EdgesInto(v V) []V {
	return sortedKeys(g.in[v])
}

func sortedKeys[V cmp.Ordered](m map[V]struct{}) []V {
	res := make([]V, 0, len(m))
	for v := range m {
		res = append(res, v)
	}
	slices.Sort(res)
	return res
}

// TopologicalSort returns every vertex after all of its predecessors (Kahn's
// algorithm, ties broken by vertex order).
func (g *Graph[V]) TopologicalSort() ([]V, error) {
	inDegree := make(map[V]int, len(g.vertices))
	queue := make([]V, 0, len(g.vertices))
	for _, v := range g.Vertices() {
		inDegree[v] = len(g.in[v])
		if inDegree[v] == 0 {
			queue = append(queue, v)
		}
	}
	for i := 0; i < len(queue); i++ {
		for _, y := range g.EdgesOutOf(queue[i]) {
			inDegree[y]--
			if inDegree[y] == 0 {
				queue = append(queue, y)
			}
		}
	}
	if len(queue) != len(g.vertices) {
		return nil, fmt.Errorf("%w: the graph has a cycle (%d of %d vertices sorted)", ir.ErrInvalidArgument, len(queue), len(g.vertices))
	}
	return queue, nil
}

// SortGraphByLevels places each vertex in the earliest level that comes after
// the levels of all its predecessors. Sources are in level 0 and every level
// is sorted. Levels count from the sources, not back from the sinks, so a
// node with no users may sit well before the last level.
func (g *Graph[V]) SortGraphByLevels() ([][]V, error) {
	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}
	level := make(map[V]int, len(order))
	var levels [][]V
	for _, v := range order {
		l := 0
		for x := range g.in[v] {
			if level[x]+1 > l {
				l = level[x] + 1
			}
		}
		level[v] = l
		if l == len(levels) {
			levels = append(levels, nil)
		}
		levels[l] = append(levels[l], v)
	}
	for _, vs := range levels {
		slices.Sort(vs)
	}
	return levels, nil
}

// LastUseLevels returns, for every vertex consumed by some other vertex, the
// index of the last level holding one of its consumers. Vertices without
// consumers are absent from the result.
func LastUseLevels[V cmp.Ordered](g *Graph[V], levels [][]V) map[V]int {
	res := make(map[V]int)
	for i, vs := range levels {
		for _, v := range vs {
			for x := range g.in[v] {
				if l, ok := res[x]; !ok || l < i {
					res[x] = i
				}
			}
		}
	}
	return res
}
