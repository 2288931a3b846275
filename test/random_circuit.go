package test

import (
	"fmt"
	"math/rand"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/builder"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
)

type randomCircuitConfig struct {
	seed       int
	nbParams   randRange
	paramWidth randRange
	nbGates    randRange
	// percentages of param shapes: bits up to bitsPercent, then arrays up
	// to arrayPercent, then tuples
	bitsPercent  int
	arrayPercent int
	// percentage of params passed by reference, half of them const
	refPercent int
	// percentages of gates: and up to andPercent, or up to orPercent, then not
	andPercent int
	orPercent  int
}

type randRange struct {
	l int
	r int
}

func (rr *randRange) sample(r *rand.Rand) int {
	return r.Intn(rr.r-rr.l+1) + rr.l
}

// bitExpr is how the generator computes a gate by itself, without looking at
// the graph: a param bit, a constant, or a gate over earlier entries.
type bitExpr struct {
	op     ir.Operation
	param  string
	offset int
	value  bool
	x, y   int
}

type randomParam struct {
	name  string
	typ   *ir.Type
	ref   bool
	cnst  bool
	width int
}

func (p *randomParam) isInOut() bool {
	return p.ref && !p.cnst
}

type randomCircuit struct {
	g      *ir.Graph
	params []randomParam
	exprs  []bitExpr
	// number of bits of the return value
	retWidth int
	// update of each in/out param: indices into exprs, in flat order
	updates map[string][]int
}

func newRandomCircuit(conf *randomCircuitConfig) *randomCircuit {
	r := rand.New(rand.NewSource(int64(conf.seed)))
	b := builder.New()
	rc := &randomCircuit{updates: make(map[string][]int)}

	var nodes []*ir.Node
	leaf := func(n *ir.Node, e bitExpr) {
		nodes = append(nodes, n)
		rc.exprs = append(rc.exprs, e)
	}

	nbParams := conf.nbParams.sample(r)
	for i := 0; i < nbParams; i++ {
		p := randomParam{name: fmt.Sprintf("p%d", i)}
		w := conf.paramWidth.sample(r)
		shape := r.Intn(100)
		switch {
		case shape < conf.bitsPercent:
			p.typ = ir.Bits(w)
		case shape < conf.arrayPercent:
			p.typ = ir.ArrayOf(r.Intn(4)+1, ir.Bits(w))
		default:
			p.typ = ir.TupleOf(ir.Bits(w), ir.Bits(r.Intn(3)+1), ir.Bits(w))
		}
		if r.Intn(100) < conf.refPercent {
			p.ref = true
			p.cnst = r.Intn(2) == 0
		}
		p.width = p.typ.FlatBitCount()

		var pn *ir.Node
		switch {
		case p.isInOut():
			pn = b.RefParam(p.name, p.typ)
		case p.ref:
			pn = b.ConstRefParam(p.name, p.typ)
		default:
			pn = b.Param(p.name, p.typ)
		}
		rc.params = append(rc.params, p)

		// every bit of the param, through the navigation matching its type
		switch p.typ.Kind {
		case ir.TBits:
			for j := 0; j < w; j++ {
				if j > 0 && r.Intn(4) == 0 {
					// through a wider slice
					outer := b.BitSlice(pn, j-1, 2)
					leaf(b.BitSlice(outer, 1, 1), bitExpr{op: ir.OBitSlice, param: p.name, offset: j})
					continue
				}
				leaf(b.BitSlice(pn, j, 1), bitExpr{op: ir.OBitSlice, param: p.name, offset: j})
			}
		case ir.TArray:
			for k := 0; k < p.typ.Size; k++ {
				el := b.ArrayIndexAt(pn, k)
				for j := 0; j < w; j++ {
					leaf(b.BitSlice(el, j, 1), bitExpr{op: ir.OBitSlice, param: p.name, offset: k*w + j})
				}
			}
		case ir.TTuple:
			base := 0
			for k, et := range p.typ.Elems {
				el := b.TupleIndex(pn, k)
				for j := 0; j < et.Width; j++ {
					leaf(b.BitSlice(el, j, 1), bitExpr{op: ir.OBitSlice, param: p.name, offset: base + j})
				}
				base += et.Width
			}
		}
		// the bit a shift by one leaves past the end
		b.BitSlice(pn, p.width, 1)
	}
	leaf(b.Bool(false), bitExpr{op: ir.OLiteral})
	leaf(b.Bool(true), bitExpr{op: ir.OLiteral, value: true})

	nbGates := conf.nbGates.sample(r)
	for i := 0; i < nbGates; i++ {
		x := r.Intn(len(nodes))
		y := r.Intn(len(nodes))
		op := r.Intn(100)
		switch {
		case op < conf.andPercent:
			leaf(b.And(nodes[x], nodes[y]), bitExpr{op: ir.OAnd, x: x, y: y})
		case op < conf.orPercent:
			leaf(b.Or(nodes[x], nodes[y]), bitExpr{op: ir.OOr, x: x, y: y})
		default:
			leaf(b.Not(nodes[x]), bitExpr{op: ir.ONot, x: x})
		}
	}

	// the return value holds every bit computed above, so that comparing
	// outputs compares every node; bit i is nodes[i]
	rc.retWidth = len(nodes)
	msbFirst := make([]*ir.Node, len(nodes))
	for i, n := range nodes {
		msbFirst[len(nodes)-1-i] = n
	}
	ret := b.Concat(msbFirst...)

	var updates []*ir.Node
	for _, p := range rc.params {
		if !p.isInOut() {
			continue
		}
		idx := make([]int, 0, p.width)
		updates = append(updates, rc.randomValue(b, r, p.typ, nodes, &idx))
		rc.updates[p.name] = idx
	}
	if len(updates) > 0 {
		ret = b.Tuple(append([]*ir.Node{ret}, updates...)...)
	}
	g, err := b.Finalize(ret)
	if err != nil {
		panic(err)
	}
	rc.g = g
	return rc
}

// randomValue builds a value of type t out of existing bits, recording which
// expr lands on each flat bit.
func (rc *randomCircuit) randomValue(b *builder.Builder, r *rand.Rand, t *ir.Type, nodes []*ir.Node, idx *[]int) *ir.Node {
	switch t.Kind {
	case ir.TBits:
		bits := make([]*ir.Node, t.Width)
		for j := range bits {
			k := r.Intn(len(nodes))
			bits[j] = nodes[k]
			*idx = append(*idx, k)
		}
		if t.Width == 1 {
			return bits[0]
		}
		return b.JoinBits(bits)
	case ir.TArray:
		xs := make([]*ir.Node, t.Size)
		for j := range xs {
			xs[j] = rc.randomValue(b, r, t.Elem, nodes, idx)
		}
		return b.Array(xs...)
	case ir.TTuple:
		xs := make([]*ir.Node, len(t.Elems))
		for j, et := range t.Elems {
			xs[j] = rc.randomValue(b, r, et, nodes, idx)
		}
		return b.Tuple(xs...)
	}
	panic("unexpected type")
}

// randomAssignment returns in and inout bindings for the params.
func (rc *randomCircuit) randomAssignment(seed int) (map[string][]bool, map[string][]bool) {
	r := rand.New(rand.NewSource(int64(seed)))
	in := make(map[string][]bool)
	inout := make(map[string][]bool)
	for _, p := range rc.params {
		bits := make([]bool, p.width)
		for j := range bits {
			bits[j] = r.Intn(2) == 1
		}
		if p.isInOut() {
			inout[p.name] = bits
		} else {
			in[p.name] = bits
		}
	}
	return in, inout
}

// expected computes the outputs from the exprs alone.
func (rc *randomCircuit) expected(in, inout map[string][]bool) ([]bool, map[string][]bool) {
	values := make([]bool, len(rc.exprs))
	for i, e := range rc.exprs {
		switch e.op {
		case ir.OBitSlice:
			if span, ok := in[e.param]; ok {
				values[i] = span[e.offset]
			} else {
				values[i] = inout[e.param][e.offset]
			}
		case ir.OLiteral:
			values[i] = e.value
		case ir.OAnd:
			values[i] = values[e.x] && values[e.y]
		case ir.OOr:
			values[i] = values[e.x] || values[e.y]
		case ir.ONot:
			values[i] = !values[e.x]
		}
	}
	updated := make(map[string][]bool)
	for name, idx := range rc.updates {
		bits := make([]bool, len(idx))
		for j, k := range idx {
			bits[j] = values[k]
		}
		updated[name] = bits
	}
	return values, updated
}
