// Package builder implements the incremental minimization builder: the
// mutable DFA under construction, its register of confluent states, and
// the replace-or-register recursion from Daciuk, Mihov, Watson &
// Watson's incremental construction algorithm.
//
// States live in an arena (a contiguous []stateRecord indexed by
// integer handle) rather than as individually allocated, mutually
// referencing objects, so a registered state can be frozen by
// convention instead of by the type system.
package builder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/borospeti/automata/bstring"
	"github.com/borospeti/automata/fsa"
	"github.com/borospeti/automata/internal/diag"
	"github.com/borospeti/automata/packer"
)

// finalSymbol is the reserved byte marking a transition to the shared
// sink (accepting) state.
const finalSymbol byte = 0xff

// finalTarget is the sentinel transition target standing in for the
// shared sink. The sink is never itself represented as an arena state:
// every transition to it carries the same sentinel, which gives it the
// required uniqueness and sharing without needing an actual node
// whose own (irrelevant) placement would have to be decided later.
const finalTarget int32 = -1

// rootID is always the arena index of the start state.
const rootID int32 = 0

type transition struct {
	symbol byte
	target int32
}

type stateRecord struct {
	transitions []transition // ascending by symbol
}

// Stats is a snapshot of the builder's progress, usable to observe
// minimality: the number of distinct registered signatures after
// finalization.
type Stats struct {
	KeysInserted     int
	StatesCreated    int
	StatesRegistered int
}

// Builder is the mutable DFA under construction. The zero
// value is not usable; construct one with New.
type Builder struct {
	arena    []stateRecord
	register map[string]int32 // transition-list signature -> arena index

	previousInput []byte
	hasPrevious   bool
	finalized     bool

	keysInserted int
	log          *diag.Logger
}

type config struct {
	log *diag.Logger
}

// Option configures a new Builder.
type Option func(*config)

// WithLogger attaches structured logging to construction. A nil logger
// (the default) discards everything.
func WithLogger(l *diag.Logger) Option {
	return func(c *config) { c.log = l }
}

// New creates an empty builder, ready for InsertSorted calls.
func New(opts ...Option) *Builder {
	cfg := config{log: diag.Nop()}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.log == nil {
		cfg.log = diag.Nop()
	}
	return &Builder{
		arena:    []stateRecord{{}}, // index 0 is always the root state
		register: make(map[string]int32),
		log:      cfg.log,
	}
}

func (b *Builder) newState() int32 {
	b.arena = append(b.arena, stateRecord{})
	return int32(len(b.arena) - 1)
}

func (b *Builder) lastTransition(state int32) (transition, bool) {
	trs := b.arena[state].transitions
	if len(trs) == 0 {
		return transition{}, false
	}
	return trs[len(trs)-1], true
}

func (b *Builder) addTransition(state int32, symbol byte, target int32) {
	b.arena[state].transitions = append(b.arena[state].transitions, transition{symbol: symbol, target: target})
}

func (b *Builder) findChild(state int32, symbol byte) (int32, bool) {
	for _, t := range b.arena[state].transitions {
		if t.symbol == symbol {
			return t.target, true
		}
	}
	return 0, false
}

// signature returns the transition-list signature used to key the
// register: the ordered (symbol, target) pairs, binary-encoded so
// that equal signatures imply equal transition lists unambiguously.
func (b *Builder) signature(state int32) string {
	trs := b.arena[state].transitions
	buf := make([]byte, 0, len(trs)*5)
	var tmp [4]byte
	for _, t := range trs {
		buf = append(buf, t.symbol)
		binary.BigEndian.PutUint32(tmp[:], uint32(t.target))
		buf = append(buf, tmp[:]...)
	}
	return string(buf)
}

// replaceOrRegister is the recursive post-order walk at the heart of
// the minimization algorithm: it recurses into the last non-final
// child first, then either rewires state's last transition to an
// equivalent already registered state, or freezes the child into the
// register.
func (b *Builder) replaceOrRegister(state int32) {
	last, ok := b.lastTransition(state)
	if !ok || last.symbol == finalSymbol {
		return // no children, or the only addition since was finality
	}

	child := last.target
	b.replaceOrRegister(child)

	sig := b.signature(child)
	if other, hit := b.register[sig]; hit {
		trs := b.arena[state].transitions
		trs[len(trs)-1].target = other
		b.log.Debug("register hit", zap.Int32("child", child), zap.Int32("canonical", other))
	} else {
		b.register[sig] = child
		b.log.Debug("register miss", zap.Int32("child", child))
	}
}

// addSuffix appends a fresh chain of states for suffix, starting at
// state, then marks the terminal state final.
func (b *Builder) addSuffix(state int32, suffix []byte) {
	for _, s := range suffix {
		child := b.newState()
		b.addTransition(state, s, child)
		state = child
	}
	b.addTransition(state, finalSymbol, finalTarget)
}

func (b *Builder) commonPrefix(key []byte) (int, int32) {
	state := rootID
	i := 0
	for i < len(key) {
		next, ok := b.findChild(state, key[i])
		if !ok {
			break
		}
		state = next
		i++
	}
	return i, state
}

// InsertSorted inserts the next key. Keys must arrive in the §3 total
// order (ties dropped silently, violations rejected). No mutation is
// committed before the order/finalized/reserved-byte checks succeed.
func (b *Builder) InsertSorted(key []byte) error {
	if b.finalized {
		return ErrFinalized
	}
	for _, c := range key {
		if c == 0x00 || c == finalSymbol {
			return ErrReservedByte
		}
	}

	next := bstring.New(key)
	if b.hasPrevious {
		prev := bstring.New(b.previousInput)
		switch bstring.Compare(prev, next) {
		case 0:
			return nil // duplicate adjacent key, dropped silently
		case 1:
			return fmt.Errorf("%w: %q > %q", ErrOrderViolation, string(b.previousInput), string(key))
		}
	}

	prefixLen, lastState := b.commonPrefix(key)
	b.replaceOrRegister(lastState)
	b.addSuffix(lastState, key[prefixLen:])

	b.previousInput = append(b.previousInput[:0], key...)
	b.hasPrevious = true
	b.keysInserted++
	return nil
}

// InsertSortedString is a convenience wrapper taking a Go string.
func (b *Builder) InsertSortedString(key string) error {
	return b.InsertSorted([]byte(key))
}

// Finalize minimizes the automaton: it is idempotent, and may be
// called any number of times with the same observable effect.
func (b *Builder) Finalize() {
	if b.finalized {
		return
	}
	b.replaceOrRegister(rootID)
	b.register[b.signature(rootID)] = rootID
	b.finalized = true
	b.log.Info("finalized", zap.Int("keys", b.keysInserted), zap.Int("states_registered", len(b.register)))
}

// registers returns the packer input: one Register per entry currently
// in the register map, in arbitrary (map iteration) order — packer's
// placement is order-independent by construction.
func (b *Builder) registers() []packer.Register {
	out := make([]packer.Register, 0, len(b.register))
	for _, id := range b.register {
		trs := b.arena[id].transitions
		pt := make([]packer.Transition, len(trs))
		for i, t := range trs {
			target := t.target
			if t.symbol == finalSymbol {
				target = packer.FinalTarget
			}
			pt[i] = packer.Transition{Symbol: t.symbol, Target: target}
		}
		out = append(out, packer.Register{ID: id, Transitions: pt})
	}
	return out
}

// BuildFSA finalizes (idempotently) and packs the automaton into its
// compact double-array representation.
func (b *Builder) BuildFSA(opts ...packer.Option) (*fsa.FSA, error) {
	b.Finalize()

	opts = append([]packer.Option{packer.WithLogger(b.log)}, opts...)
	packed, stats, err := packer.Pack(b.registers(), rootID, opts...)
	if err != nil {
		return nil, fmt.Errorf("builder: %w", err)
	}
	b.log.Info("build complete", zap.Int("states", stats.States), zap.Int("slots", stats.SlotsAllocated))

	return fsa.FromArrays(packed.Sym, packed.Nxt, packed.Start), nil
}

// Stats returns a snapshot of the builder's progress so far.
func (b *Builder) Stats() Stats {
	return Stats{
		KeysInserted:     b.keysInserted,
		StatesCreated:    len(b.arena),
		StatesRegistered: len(b.register),
	}
}

// Dump writes a human-readable listing of every registered state and
// its transitions, for debugging. It has no effect on construction.
func (b *Builder) Dump(w io.Writer) error {
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "root: %d\n", rootID)
	for sig, id := range b.register {
		fmt.Fprintf(buf, "S%d:", id)
		for _, t := range b.arena[id].transitions {
			if t.symbol == finalSymbol {
				fmt.Fprint(buf, " (FINAL)")
				continue
			}
			fmt.Fprintf(buf, " (%q->S%d)", t.symbol, t.target)
		}
		fmt.Fprintf(buf, " [sig=%x]\n", sig)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
