package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/borospeti/automata/builder"
	"github.com/borospeti/automata/fsa"
)

func buildFromWords(t *testing.T, words []string) *builder.Builder {
	t.Helper()
	b := builder.New()
	for _, w := range words {
		require.NoError(t, b.InsertSortedString(w))
	}
	return b
}

// bofcMufcSet returns a worked example set in its correct sorted
// insertion order (the longer of any two prefix-related strings must
// be inserted first, since it compares as the lesser element).
func bofcMufcSet() []string {
	return []string{
		"böfc mufc",
		"böfc",
		"mufc böfc",
		"mufc",
	}
}

func TestMembershipCorrectness(t *testing.T) {
	b := buildFromWords(t, bofcMufcSet())
	f, err := b.BuildFSA()
	require.NoError(t, err)

	for _, w := range bofcMufcSet() {
		ok, err := f.Lookup([]byte(w))
		require.NoError(t, err)
		require.Truef(t, ok, "expected %q to be a member", w)
	}

	for _, w := range []string{"böfcmufc", "muf", "mufcc", "foobar"} {
		ok, err := f.Lookup([]byte(w))
		require.NoError(t, err)
		require.Falsef(t, ok, "expected %q to not be a member", w)
	}
}

func TestDictionaryOrder(t *testing.T) {
	b := buildFromWords(t, bofcMufcSet())
	f, err := b.BuildFSA()
	require.NoError(t, err)

	require.Equal(t, bofcMufcSet(), f.Dictionary())
}

func TestCursorTraceForBofcMufc(t *testing.T) {
	b := buildFromWords(t, bofcMufcSet())
	f, err := b.BuildFSA()
	require.NoError(t, err)

	word := "böfc mufc"
	c := f.Start()
	finalAt := map[int]bool{5: true, 10: true} // after "böfc" and after the full phrase

	for i, x := range []byte(word) {
		valid, err := c.StepByte(x)
		require.NoError(t, err)
		require.Truef(t, valid, "cursor should stay valid through byte %d (%q)", i+1, word[:i+1])
		require.Equal(t, finalAt[i+1], c.IsFinal(), "finality mismatch after %d bytes (%q)", i+1, word[:i+1])
	}
}

func TestMinimalityProxyEqualSetsYieldEqualSignatureCount(t *testing.T) {
	// Ascending §3 order for three nested prefixes: the longest sorts
	// first.
	set1 := []string{"abc", "ab", "a"}
	set2 := []string{"abc", "ab", "a"} // same set, same order here, but exercised independently

	b1 := buildFromWords(t, set1)
	b1.Finalize()
	b2 := buildFromWords(t, set2)
	b2.Finalize()

	require.Equal(t, b1.Stats().StatesRegistered, b2.Stats().StatesRegistered)
}

func TestPrefixSemantics(t *testing.T) {
	// Ascending §3 order: "blip" < "catnip" < "cats" < "cat" < "" (the
	// empty string, a prefix of every non-empty key, is the greatest
	// element among them).
	b := buildFromWords(t, []string{"blip", "catnip", "cats", "cat", ""})
	f, err := b.BuildFSA()
	require.NoError(t, err)

	c := f.Start()
	valid, err := c.ConsumeBytes([]byte("ca"))
	require.NoError(t, err)
	require.True(t, valid, "\"ca\" is a prefix of inserted keys")

	c2 := f.Start()
	valid, err = c2.ConsumeBytes([]byte("xyz"))
	require.NoError(t, err)
	require.False(t, valid)
}

func TestCursorIndependence(t *testing.T) {
	// "cats" is a strict extension of "cat", so under the §3 inversion
	// it must be inserted first.
	b := buildFromWords(t, []string{"cats", "cat"})
	f, err := b.BuildFSA()
	require.NoError(t, err)

	c1 := f.Start()
	_, err = c1.ConsumeBytes([]byte("cat"))
	require.NoError(t, err)
	require.True(t, c1.IsFinal())

	c2 := c1.Clone()
	valid, err := c2.StepByte('s')
	require.NoError(t, err)
	require.True(t, valid)
	require.True(t, c2.IsFinal())

	// c1 must be unaffected by stepping c2.
	require.True(t, c1.IsValid())
	require.True(t, c1.IsFinal())
}

func TestReservedByteRejection(t *testing.T) {
	b := buildFromWords(t, []string{"a"})
	f, err := b.BuildFSA()
	require.NoError(t, err)

	c := f.Start()
	_, err = c.StepByte(0x00)
	require.ErrorIs(t, err, fsa.ErrReservedByte)
	require.True(t, c.IsValid(), "reserved-byte rejection must not alter cursor state")

	_, err = c.StepByte(0xff)
	require.ErrorIs(t, err, fsa.ErrReservedByte)
	require.True(t, c.IsValid())
}

func TestIdempotentFinalize(t *testing.T) {
	b := buildFromWords(t, []string{"abc", "ab", "a"})
	b.Finalize()
	stats1 := b.Stats()
	b.Finalize()
	stats2 := b.Stats()
	require.Equal(t, stats1, stats2)
}

func TestOrderViolation(t *testing.T) {
	b := builder.New()
	require.NoError(t, b.InsertSortedString("b"))
	err := b.InsertSortedString("a")
	require.ErrorIs(t, err, builder.ErrOrderViolation)

	f, err := b.BuildFSA()
	require.NoError(t, err)

	ok, err := f.Lookup([]byte("b"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = f.Lookup([]byte("a"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestInsertAfterFinalized(t *testing.T) {
	b := builder.New()
	require.NoError(t, b.InsertSortedString("a"))
	b.Finalize()
	err := b.InsertSortedString("b")
	require.ErrorIs(t, err, builder.ErrFinalized)
}

func TestDuplicateAdjacentKeysDropped(t *testing.T) {
	b := builder.New()
	require.NoError(t, b.InsertSortedString("a"))
	require.NoError(t, b.InsertSortedString("a"))
	require.Equal(t, 1, b.Stats().KeysInserted)
}

func TestReservedByteInKey(t *testing.T) {
	b := builder.New()
	err := b.InsertSorted([]byte{'a', 0xff, 'b'})
	require.ErrorIs(t, err, builder.ErrReservedByte)
}
