// Package fsaio implements the bit-exact on-disk format for a packed
// automaton:
//
//	offset  size  field
//	0       4     magic = 0x62D80AB5
//	4       4     L   (number of slots = length of sym = length of nxt)
//	8       4     start (start base)
//	12      L     sym bytes
//	12+L    4*L   nxt ints (signed 32-bit, little-endian)
//
// Writes and reads are chunked through a buffer of 1 MiB by default
// (see WithChunkSize).
package fsaio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic is the fixed magic number identifying a packed automaton file.
const Magic uint32 = 0x62D80AB5

const headerSize = 12

// defaultChunkSize is the minimum recommended buffer size for chunked
// I/O.
const defaultChunkSize = 1 << 20

// ErrInvalidFile is returned by Read/ValidateHeader when the magic
// number does not match or the structural bounds check on start fails.
var ErrInvalidFile = errors.New("fsaio: invalid or corrupt automaton file")

type config struct {
	chunkSize int
}

// Option configures Write/Read buffering.
type Option func(*config)

// WithChunkSize overrides the I/O buffer size. The default is 1 MiB.
func WithChunkSize(n int) Option {
	return func(c *config) { c.chunkSize = n }
}

func newConfig(opts []Option) config {
	c := config{chunkSize: defaultChunkSize}
	for _, o := range opts {
		o(&c)
	}
	if c.chunkSize < 1 {
		c.chunkSize = defaultChunkSize
	}
	return c
}

// ValidateHeader checks the header invariants required on read: magic
// match and 0 <= start <= L-256.
func ValidateHeader(magic uint32, l, start int32) error {
	if magic != Magic {
		return fmt.Errorf("%w: bad magic %#x", ErrInvalidFile, magic)
	}
	if start < 0 || start > l-256 {
		return fmt.Errorf("%w: start %d out of range for L=%d", ErrInvalidFile, start, l)
	}
	return nil
}

// Write serializes sym, nxt and start in the fixed format above.
func Write(w io.Writer, sym []byte, nxt []int32, start int32, opts ...Option) (int64, error) {
	if len(sym) != len(nxt) {
		return 0, fmt.Errorf("fsaio: sym and nxt length mismatch (%d != %d)", len(sym), len(nxt))
	}
	cfg := newConfig(opts)

	bw := bufio.NewWriterSize(w, cfg.chunkSize)
	var written int64

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], Magic)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(sym)))
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(start))
	n, err := bw.Write(hdr[:])
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("fsaio: write header: %w", err)
	}

	n, err = bw.Write(sym)
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("fsaio: write sym: %w", err)
	}

	var buf [4]byte
	for _, v := range nxt {
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		n, err = bw.Write(buf[:])
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("fsaio: write nxt: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("fsaio: flush: %w", err)
	}
	return written, nil
}

// Read deserializes sym, nxt and start, validating the header per
// ValidateHeader. It reads the full file into memory.
func Read(r io.Reader, opts ...Option) (sym []byte, nxt []int32, start int32, err error) {
	cfg := newConfig(opts)
	br := bufio.NewReaderSize(r, cfg.chunkSize)

	var hdr [headerSize]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, nil, 0, fmt.Errorf("%w: short header (%w)", ErrInvalidFile, err)
	}
	magic := binary.LittleEndian.Uint32(hdr[0:4])
	l := int32(binary.LittleEndian.Uint32(hdr[4:8]))
	start = int32(binary.LittleEndian.Uint32(hdr[8:12]))
	if err := ValidateHeader(magic, l, start); err != nil {
		return nil, nil, 0, err
	}

	sym = make([]byte, l)
	if _, err := io.ReadFull(br, sym); err != nil {
		return nil, nil, 0, fmt.Errorf("%w: short sym block (%w)", ErrInvalidFile, err)
	}

	nxt = make([]int32, l)
	buf := make([]byte, 4)
	for i := range nxt {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, nil, 0, fmt.Errorf("%w: short nxt block (%w)", ErrInvalidFile, err)
		}
		nxt[i] = int32(binary.LittleEndian.Uint32(buf))
	}

	return sym, nxt, start, nil
}
