package fsa

// Cursor is a mutable position in a compact automaton, used for
// incremental consumption. Its zero value is not usable; obtain one
// from FSA.Start. Cursor is a plain value: copying it (or calling
// Clone) produces an independent cursor that does not alias the
// original's state.
type Cursor struct {
	f     *FSA
	base  int32
	valid bool
}

// IsValid reports whether the cursor has not yet been invalidated by a
// missing transition.
func (c Cursor) IsValid() bool {
	return c.valid
}

// IsFinal reports whether the cursor's current state is accepting.
// An invalid cursor is never final.
func (c Cursor) IsFinal() bool {
	return c.valid && c.f.isFinalAt(c.base)
}

// Clone returns an independent copy of the cursor. Because Cursor is a
// plain value type, this is equivalent to (and as cheap as) a direct
// assignment; it is provided so callers have an explicit name for the
// operation.
func (c Cursor) Clone() Cursor {
	return c
}

// StepByte consumes a single input byte. x must not be 0x00 or 0xFF,
// both reserved; attempting to step on either returns ErrReservedByte
// and leaves the cursor completely unchanged, since this is a caller
// contract breach rather than a missing transition. Any other byte
// either advances the cursor (returning true) or invalidates it
// (returning false); once invalid, a cursor stays invalid across
// further calls.
func (c *Cursor) StepByte(x byte) (bool, error) {
	if x == 0x00 || x == 0xff {
		return c.valid, ErrReservedByte
	}
	if !c.valid {
		return false, nil
	}

	idx := c.base + int32(x)
	sym, nxt, ok := c.f.lookupSlot(idx)
	if ok && sym == x {
		c.base = nxt
	} else {
		c.valid = false
	}
	return c.valid, nil
}

// ConsumeBytes steps through seq in order, stopping at the first
// invalidation, and returns the cursor's final validity. A reserved
// byte reached before that point aborts with ErrReservedByte, leaving
// the bytes already stepped consumed; bytes after the first
// invalidation are not examined.
func (c *Cursor) ConsumeBytes(seq []byte) (bool, error) {
	for _, x := range seq {
		valid, err := c.StepByte(x)
		if err != nil {
			return c.valid, err
		}
		if !valid {
			break
		}
	}
	return c.valid, nil
}
