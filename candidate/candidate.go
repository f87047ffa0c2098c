// Package candidate converts accepted search-tree terminal nodes into vertex
// sets and serializes them to the binary record format SPEC_FULL.md §6
// defines, replacing the original implementation's ANSWERS-list pickle with
// a format a streaming writer can emit one record at a time.
package candidate

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/neojume/twoclubs/lib"
)

// Set is one accepted candidate: the indices of the vertices it contains, in
// increasing order.
type Set struct {
	ID       int
	Vertices []int
}

// FromInfo builds a Set from a terminal node's info vector: every vertex not
// marked Excluded belongs to the 2-club (Included and Undecided are
// equivalent once DROP has returned NoVertex, since no further branching
// distinguished them).
func FromInfo(id int, info []int8) Set {
	var vs []int
	for i, k := range info {
		if k != lib.Excluded {
			vs = append(vs, i)
		}
	}
	return Set{ID: id, Vertices: vs}
}

// Labels maps a Set's internal vertex indices back to external ids.
func (s Set) Labels(g *lib.Graph) []string {
	out := make([]string, len(s.Vertices))
	for i, v := range s.Vertices {
		out[i] = g.Label(v)
	}
	return out
}

// Writer streams candidates to the binary record format: little-endian
// int32 id, int32 size, then size little-endian int32 vertex indices.
type Writer struct {
	w       *bufio.Writer
	nextID  int
	scratch [4]byte
}

// NewWriter wraps w in a buffered binary candidate writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write emits one candidate, assigning it the next sequential id in
// emission order regardless of any id the caller set on s.
func (cw *Writer) Write(s Set) error {
	s.ID = cw.nextID
	cw.nextID++

	if err := cw.writeInt32(int32(s.ID)); err != nil {
		return err
	}
	if err := cw.writeInt32(int32(len(s.Vertices))); err != nil {
		return err
	}
	for _, v := range s.Vertices {
		if err := cw.writeInt32(int32(v)); err != nil {
			return err
		}
	}
	return nil
}

func (cw *Writer) writeInt32(v int32) error {
	binary.LittleEndian.PutUint32(cw.scratch[:], uint32(v))
	_, err := cw.w.Write(cw.scratch[:])
	return err
}

// Flush flushes any buffered output.
func (cw *Writer) Flush() error { return cw.w.Flush() }

// ReadAll reads every candidate record from r until EOF.
func ReadAll(r io.Reader) ([]Set, error) {
	br := bufio.NewReader(r)
	var out []Set
	for {
		id, ok, err := readInt32(br)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		size, ok, err := readInt32(br)
		if err == nil && !ok {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, fmt.Errorf("candidate: reading size for record %d: %w", id, err)
		}
		if size < 0 {
			return nil, fmt.Errorf("candidate: record %d has negative size %d", id, size)
		}
		vs := make([]int, size)
		for i := range vs {
			v, ok, err := readInt32(br)
			if err == nil && !ok {
				err = io.ErrUnexpectedEOF
			}
			if err != nil {
				return nil, fmt.Errorf("candidate: reading vertex %d of record %d: %w", i, id, err)
			}
			vs[i] = int(v)
		}
		out = append(out, Set{ID: int(id), Vertices: vs})
	}
}

// readInt32 returns ok=false only on a clean EOF (no bytes read). ReadAll
// accepts that as end of input only at a record boundary; inside a record it
// is reported as a truncated record.
func readInt32(r io.Reader) (int32, bool, error) {
	var buf [4]byte
	n, err := io.ReadFull(r, buf[:])
	if n == 0 && err == io.EOF {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("candidate: short record: %w", err)
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), true, nil
}
