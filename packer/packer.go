// Package packer implements a sparse double-array packer: it lays
// every registered state's transition list into two shared arrays, sym
// and nxt, such that each state's transitions occupy slots no other
// state owns. The two bookkeeping bitsets are backed by
// github.com/bits-and-blooms/bitset.
package packer

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"

	"github.com/borospeti/automata/internal/diag"
)

// FinalTarget is the sentinel Transition.Target used for the reserved
// finality marker (symbol 0xFF). The shared sink state it conceptually
// points to is never itself packed: this implementation special-cases
// it out of the register entirely, since its nxt value is never
// consulted at query time.
const FinalTarget int32 = -1

// FinalSymbol is the reserved finality marker.
const FinalSymbol byte = 0xff

// defaultSearchOffset bounds how far back the placement scan starts
// looking for a free origin slot; empirically chosen, larger values
// cost linear placement time for no measurable packing gain.
const defaultSearchOffset = 512

// Transition is one outgoing edge of a Register, named by the Register
// it targets (or FinalTarget for a transition to the shared sink).
type Transition struct {
	Symbol byte
	Target int32
}

// Register is a single registered (frozen) builder state, identified
// by its arena handle, ready to be placed into the shared arrays.
// Transitions must be ordered ascending by Symbol.
type Register struct {
	ID          int32
	Transitions []Transition
}

// Packed is the output of Pack: the two shared arrays and the start
// offset.
type Packed struct {
	Sym   []byte
	Nxt   []int32
	Start int32
}

// Stats summarizes a Pack call.
type Stats struct {
	States         int
	SlotsUsed      int
	SlotsAllocated int
	PackRatio      float64
}

type config struct {
	searchOffset uint
	log          *diag.Logger
}

// Option configures a Pack call.
type Option func(*config)

// WithSearchOffset overrides the placement scan's lookback distance.
// The default is 512.
func WithSearchOffset(n int) Option {
	return func(c *config) { c.searchOffset = uint(n) }
}

// WithLogger attaches structured logging to the pack run.
func WithLogger(l *diag.Logger) Option {
	return func(c *config) { c.log = l }
}

// Pack assigns every state in states a base offset in two shared
// arrays such that each state's transitions occupy slots exclusively
// its own. startID must be the ID of the register that should become
// the automaton's start state.
func Pack(states []Register, startID int32, opts ...Option) (Packed, Stats, error) {
	cfg := config{searchOffset: defaultSearchOffset, log: diag.Nop()}
	for _, o := range opts {
		o(&cfg)
	}

	slotUsed := bitset.New(0)
	originUsed := bitset.New(0)
	offsets := make(map[int32]int32, len(states))

	var maxTop uint
	for _, st := range states {
		cand := uint(0)
		if l := slotUsed.Len(); l > cfg.searchOffset {
			cand = l - cfg.searchOffset
		}

		for {
			ok := !originUsed.Test(cand)
			if ok {
				for _, tr := range st.Transitions {
					if slotUsed.Test(cand + uint(tr.Symbol)) {
						ok = false
						break
					}
				}
			}
			if ok {
				break
			}
			cand++
		}

		originUsed.Set(cand)
		for _, tr := range st.Transitions {
			slotUsed.Set(cand + uint(tr.Symbol))
		}
		offsets[st.ID] = int32(cand)
		if top := cand + 256; top > maxTop {
			maxTop = top
		}

		cfg.log.Debug("placed state", zap.Int32("id", st.ID), zap.Uint("offset", cand), zap.Int("transitions", len(st.Transitions)))
	}

	if len(states) == 0 {
		return Packed{}, Stats{}, fmt.Errorf("packer: cannot pack zero states")
	}

	sym := make([]byte, maxTop)
	nxt := make([]int32, maxTop)
	for i := range nxt {
		nxt[i] = -1
	}

	for _, st := range states {
		base := offsets[st.ID]
		for _, tr := range st.Transitions {
			idx := base + int32(tr.Symbol)
			sym[idx] = tr.Symbol
			if tr.Target == FinalTarget {
				nxt[idx] = -1
				continue
			}
			target, ok := offsets[tr.Target]
			if !ok {
				return Packed{}, Stats{}, fmt.Errorf("packer: transition from state %d targets unregistered state %d", st.ID, tr.Target)
			}
			nxt[idx] = target
		}
	}

	start, ok := offsets[startID]
	if !ok {
		return Packed{}, Stats{}, fmt.Errorf("packer: start state %d was not among the packed states", startID)
	}

	stats := Stats{
		States:         len(states),
		SlotsUsed:      int(slotUsed.Count()),
		SlotsAllocated: len(sym),
	}
	if stats.SlotsAllocated > 0 {
		stats.PackRatio = float64(stats.SlotsUsed) / float64(stats.SlotsAllocated)
	}
	cfg.log.Info("pack complete",
		zap.Int("states", stats.States),
		zap.Int("slots_used", stats.SlotsUsed),
		zap.Int("slots_allocated", stats.SlotsAllocated),
		zap.Float64("pack_ratio", stats.PackRatio),
	)

	return Packed{Sym: sym, Nxt: nxt, Start: start}, stats, nil
}
