package packer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/borospeti/automata/packer"
)

// buildLinearChain returns state 0 --'a'--> state 1 (final), i.e. a
// two-state register set recognizing the single one-byte word "a", with
// the final marker on the second state.
func buildLinearChain() ([]packer.Register, int32) {
	return []packer.Register{
		{ID: 0, Transitions: []packer.Transition{{Symbol: 'a', Target: 1}}},
		{ID: 1, Transitions: []packer.Transition{{Symbol: packer.FinalSymbol, Target: packer.FinalTarget}}},
	}, 0
}

func TestPackNoCollisions(t *testing.T) {
	states, start := buildLinearChain()
	packed, stats, err := packer.Pack(states, start)
	require.NoError(t, err)
	require.Equal(t, 2, stats.States)

	base0 := packed.Start
	require.Equal(t, byte('a'), packed.Sym[base0+int32('a')])
	base1 := packed.Nxt[base0+int32('a')]
	require.Equal(t, packer.FinalSymbol, packed.Sym[base1+int32(packer.FinalSymbol)])
}

func TestPackDistinctOrigins(t *testing.T) {
	// A root with transitions on 'a' and 'b' to two final states; no
	// state's base offset may collide with another's, and no two states
	// may claim the same origin slot.
	states := []packer.Register{
		{ID: 0, Transitions: []packer.Transition{{Symbol: 'a', Target: 1}, {Symbol: 'b', Target: 2}}},
		{ID: 1, Transitions: []packer.Transition{{Symbol: packer.FinalSymbol, Target: packer.FinalTarget}}},
		{ID: 2, Transitions: []packer.Transition{{Symbol: packer.FinalSymbol, Target: packer.FinalTarget}}},
	}

	packed, _, err := packer.Pack(states, 0)
	require.NoError(t, err)

	baseA := packed.Nxt[packed.Start+int32('a')]
	baseB := packed.Nxt[packed.Start+int32('b')]
	require.NotEqual(t, baseA, baseB)
}

func TestPackRejectsUnregisteredTarget(t *testing.T) {
	states := []packer.Register{
		{ID: 0, Transitions: []packer.Transition{{Symbol: 'a', Target: 99}}},
	}
	_, _, err := packer.Pack(states, 0)
	require.Error(t, err)
}

func TestPackSearchOffsetOption(t *testing.T) {
	states, start := buildLinearChain()
	packed, _, err := packer.Pack(states, start, packer.WithSearchOffset(1))
	require.NoError(t, err)
	require.NotEmpty(t, packed.Sym)
}
