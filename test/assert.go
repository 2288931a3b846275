package test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// runFunc evaluates a circuit: it fills result and updates the inout spans.
type runFunc func(result []bool, in, inout map[string][]bool) error

type Assert struct {
	t *testing.T
}

func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t}
}

// Matches runs the circuit on a copy of the inout spans and checks the return
// value and the updated params against what the generator computed.
func (a *Assert) Matches(rc *randomCircuit, run runFunc, in, inout map[string][]bool) []bool {
	a.t.Helper()
	wantResult, wantUpdates := rc.expected(in, inout)
	result := make([]bool, rc.retWidth)
	updated := cloneBindings(inout)
	require.NoError(a.t, run(result, in, updated))
	require.Equal(a.t, wantResult, result, "return value")
	require.Equal(a.t, wantUpdates, updated, "in/out params")
	return result
}

func cloneBindings(m map[string][]bool) map[string][]bool {
	res := make(map[string][]bool, len(m))
	for k, v := range m {
		res[k] = append([]bool(nil), v...)
	}
	return res
}
