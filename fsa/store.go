package fsa

import (
	"encoding/binary"
	"io"
)

// store abstracts the two shared arrays so the automaton can be backed
// either by fully materialized in-memory slices (the usual case, right
// after BuildFSA) or by a memory-mapped file accessed in place (Open),
// without duplicating Step/IsFinal/Dictionary logic for each.
type store interface {
	symAt(i int32) byte
	nxtAt(i int32) int32
	length() int32
	close() error
}

type arrayStore struct {
	sym []byte
	nxt []int32
}

func (s *arrayStore) symAt(i int32) byte  { return s.sym[i] }
func (s *arrayStore) nxtAt(i int32) int32 { return s.nxt[i] }
func (s *arrayStore) length() int32       { return int32(len(s.sym)) }
func (s *arrayStore) close() error        { return nil }

// readerAt is the subset of golang.org/x/exp/mmap.ReaderAt this package
// relies on, kept narrow so any io.ReaderAt that also has a Close
// method can stand in for it.
type readerAt interface {
	io.ReaderAt
	Close() error
}

// mmapStore reads sym/nxt directly out of the file's on-disk layout on
// every access, so a large automaton never needs its arrays fully
// resident in process memory.
type mmapStore struct {
	r readerAt
	l int32
}

const headerSize = 12

func (s *mmapStore) symAt(i int32) byte {
	var b [1]byte
	if _, err := s.r.ReadAt(b[:], int64(headerSize)+int64(i)); err != nil {
		return 0
	}
	return b[0]
}

func (s *mmapStore) nxtAt(i int32) int32 {
	var b [4]byte
	off := int64(headerSize) + int64(s.l) + 4*int64(i)
	if _, err := s.r.ReadAt(b[:], off); err != nil {
		return -1
	}
	return int32(binary.LittleEndian.Uint32(b[:]))
}

func (s *mmapStore) length() int32 { return s.l }
func (s *mmapStore) close() error  { return s.r.Close() }
