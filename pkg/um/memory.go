package um

import (
	"errors"
	"fmt"
)

// ErrSegmentFault is returned when a load or store targets an unmapped
// segment or an offset beyond a segment's length.
var ErrSegmentFault = errors.New("um: segment fault")

// ErrBadUnmap is returned when the program unmaps segment 0 or a
// segment that is not currently mapped.
var ErrBadUnmap = errors.New("um: bad unmap")

// Memory is the segmented store of a machine.
//
// Segment 0 holds the executing program image and stays mapped for the
// life of the machine. Every other id is either mapped to a segment or
// sits on the free list waiting to be reused; ids never appear in both
// places. Mapping reuses the most recently freed id when one exists and
// extends the table otherwise.
type Memory struct {
	segs [][]uint32 // indexed by segment id; nil means unmapped
	free []uint32   // ids available for reuse
}

// NewMemory creates a memory whose segment 0 is the given program
// image. The image is owned by the memory afterwards.
func NewMemory(program []uint32) *Memory {
	if program == nil {
		// A nil slice would read as "unmapped"; segment 0 must not.
		program = []uint32{}
	}
	return &Memory{segs: [][]uint32{program}}
}

// Map allocates a zero-filled segment of length words and returns its
// id.
func (m *Memory) Map(length uint32) uint32 {
	seg := make([]uint32, length)
	if n := len(m.free); n > 0 {
		id := m.free[n-1]
		m.free = m.free[:n-1]
		m.segs[id] = seg
		return id
	}
	m.segs = append(m.segs, seg)
	return uint32(len(m.segs) - 1)
}

// Unmap releases the segment at id and makes the id available for
// reuse.
func (m *Memory) Unmap(id uint32) error {
	if id == 0 {
		return fmt.Errorf("%w: segment 0 cannot be unmapped", ErrBadUnmap)
	}
	if id >= uint32(len(m.segs)) || m.segs[id] == nil {
		return fmt.Errorf("%w: segment %d is not mapped", ErrBadUnmap, id)
	}
	m.segs[id] = nil
	m.free = append(m.free, id)
	return nil
}

// Get returns the word at offset off of segment seg.
func (m *Memory) Get(seg, off uint32) (uint32, error) {
	s, err := m.segment(seg)
	if err != nil {
		return 0, err
	}
	if off >= uint32(len(s)) {
		return 0, fmt.Errorf("%w: offset %d beyond segment %d (length %d)",
			ErrSegmentFault, off, seg, len(s))
	}
	return s[off], nil
}

// Put writes val to offset off of segment seg.
func (m *Memory) Put(seg, off, val uint32) error {
	s, err := m.segment(seg)
	if err != nil {
		return err
	}
	if off >= uint32(len(s)) {
		return fmt.Errorf("%w: offset %d beyond segment %d (length %d)",
			ErrSegmentFault, off, seg, len(s))
	}
	s[off] = val
	return nil
}

// ReplaceZero makes segment 0's contents a copy of segment id's. The
// copy is deep: segment id stays mapped and the two segments share no
// storage afterwards.
func (m *Memory) ReplaceZero(id uint32) error {
	s, err := m.segment(id)
	if err != nil {
		return err
	}
	dup := make([]uint32, len(s))
	copy(dup, s)
	m.segs[0] = dup
	return nil
}

// Mapped reports whether id currently refers to a segment.
func (m *Memory) Mapped(id uint32) bool {
	return id < uint32(len(m.segs)) && m.segs[id] != nil
}

// SegmentLen returns the length in words of segment id, or an error if
// id is not mapped.
func (m *Memory) SegmentLen(id uint32) (int, error) {
	s, err := m.segment(id)
	if err != nil {
		return 0, err
	}
	return len(s), nil
}

func (m *Memory) segment(id uint32) ([]uint32, error) {
	if id >= uint32(len(m.segs)) || m.segs[id] == nil {
		return nil, fmt.Errorf("%w: segment %d is not mapped", ErrSegmentFault, id)
	}
	return m.segs[id], nil
}
