// Package fsa implements the compact, immutable double-array automaton
// and its cursor: stepping, membership, prefix traversal, dictionary
// enumeration, and the two backing stores (in-memory arrays produced
// fresh by the builder, or a memory-mapped file read in place).
//
// An *FSA is immutable and safe for concurrent readers. A Cursor is a
// small value type owned by one goroutine at a time; Clone copies it.
package fsa

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

// ErrReservedByte is returned by StepByte/ConsumeBytes when asked to
// consume 0x00 or 0xFF, both reserved by the wire format. Unlike a
// missed transition, this is a caller contract breach and never
// silently invalidates the cursor.
var ErrReservedByte = errors.New("fsa: input byte 0x00 and 0xff are reserved and cannot be consumed")

// ErrInvalidFile is returned by Open when the mapped file fails header
// validation.
var ErrInvalidFile = errors.New("fsa: invalid or corrupt automaton file")

// FSA is a compact, immutable double-array automaton.
type FSA struct {
	store store
	start int32
}

// FromArrays builds an in-memory automaton directly from the sym/nxt
// arrays and start offset produced by packer.Pack. This is what
// builder.Builder.BuildFSA returns.
func FromArrays(sym []byte, nxt []int32, start int32) *FSA {
	return &FSA{store: &arrayStore{sym: sym, nxt: nxt}, start: start}
}

// Open memory-maps path and returns an automaton that reads its
// transition table directly off disk, never materializing the full
// sym/nxt arrays in process memory.
func Open(path string) (*FSA, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fsa: open %s: %w", path, err)
	}

	var hdr [headerSize]byte
	if _, err := r.ReadAt(hdr[:], 0); err != nil {
		r.Close()
		return nil, fmt.Errorf("%w: short header (%w)", ErrInvalidFile, err)
	}

	magic := binary.LittleEndian.Uint32(hdr[0:4])
	l := int32(binary.LittleEndian.Uint32(hdr[4:8]))
	start := int32(binary.LittleEndian.Uint32(hdr[8:12]))

	if magic != fsaMagic {
		r.Close()
		return nil, fmt.Errorf("%w: bad magic %#x", ErrInvalidFile, magic)
	}
	if start < 0 || start > l-256 {
		r.Close()
		return nil, fmt.Errorf("%w: start %d out of range for L=%d", ErrInvalidFile, start, l)
	}

	return &FSA{store: &mmapStore{r: r, l: l}, start: start}, nil
}

// fsaMagic mirrors fsaio.Magic; duplicated as a constant here so this
// package does not need to import fsaio (which in turn has no need to
// depend on fsa), avoiding a needless package coupling for one value.
const fsaMagic uint32 = 0x62D80AB5

// Close releases resources held by a memory-mapped automaton. It is a
// no-op for an in-memory automaton built via FromArrays.
func (f *FSA) Close() error {
	return f.store.close()
}

// Arrays returns the automaton's raw sym/nxt arrays and start offset,
// materializing them on demand if the automaton is memory-mapped. Used
// by callers that want to re-serialize an automaton (e.g. fsaio.Write).
func (f *FSA) Arrays() (sym []byte, nxt []int32, start int32) {
	if as, ok := f.store.(*arrayStore); ok {
		return as.sym, as.nxt, f.start
	}

	n := f.store.length()
	sym = make([]byte, n)
	nxt = make([]int32, n)
	for i := int32(0); i < n; i++ {
		sym[i] = f.store.symAt(i)
		nxt[i] = f.store.nxtAt(i)
	}
	return sym, nxt, f.start
}

// Start returns a cursor positioned at the automaton's start state.
func (f *FSA) Start() Cursor {
	return Cursor{f: f, base: f.start, valid: true}
}

// Lookup reports whether seq is a member of the automaton's language:
// start().consume(seq).is_valid() && .is_final().
func (f *FSA) Lookup(seq []byte) (bool, error) {
	c := f.Start()
	valid, err := c.ConsumeBytes(seq)
	if err != nil {
		return false, err
	}
	return valid && c.IsFinal(), nil
}

// Dictionary enumerates every word accepted by the automaton, in
// ascending-byte depth-first order: for each state, descend through
// symbols 1..254 before considering the 0xFF finality marker, which
// emits the accumulated word last among that state's own transitions.
// This is pinned down as the canonical order (see DESIGN.md).
func (f *FSA) Dictionary() []string {
	var out []string
	var word []byte

	var walk func(base int32)
	walk = func(base int32) {
		for s := 1; s <= 254; s++ {
			sym, nxt, ok := f.lookupSlot(base + int32(s))
			if ok && sym == byte(s) {
				word = append(word, byte(s))
				walk(nxt)
				word = word[:len(word)-1]
			}
		}
		if sym, _, ok := f.lookupSlot(base + 0xff); ok && sym == 0xff {
			out = append(out, string(append([]byte(nil), word...)))
		}
	}
	walk(f.start)

	return out
}

// lookupSlot bounds-checks idx against the store's length, returning
// ok=false (never panicking) when idx falls outside the allocated
// arrays. Arrays produced by packer.Pack extend 256 slots past the
// highest base, so this only happens for arrays or files not laid out
// that way.
func (f *FSA) lookupSlot(idx int32) (sym byte, nxt int32, ok bool) {
	if idx < 0 || idx >= f.store.length() {
		return 0, 0, false
	}
	return f.store.symAt(idx), f.store.nxtAt(idx), true
}

func (f *FSA) isFinalAt(base int32) bool {
	sym, _, ok := f.lookupSlot(base + 0xff)
	return ok && sym == 0xff
}

// Dump writes every accepted word to w, one per line, in Dictionary
// order. It has no effect on the automaton and exists purely as a
// debugging aid, the fsa-side counterpart to builder.Builder.Dump.
func (f *FSA) Dump(w io.Writer) error {
	for _, word := range f.Dictionary() {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return err
		}
	}
	return nil
}
