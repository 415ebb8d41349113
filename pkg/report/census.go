// Package report summarizes program images: which opcodes an image
// uses and how often. The census backs the CLI's info listing.
package report

import (
	"sort"

	"github.com/hnguye18/um/pkg/inst"
)

// Census holds the opcode counts of one program image.
type Census struct {
	words   int
	invalid int
	counts  [inst.OpcodeCount]int
}

// Scan builds a census of the given image. Words whose opcode is
// undefined are counted but not attributed to any mnemonic; a program
// may legitimately carry them as data.
func Scan(words []uint32) *Census {
	c := &Census{words: len(words)}
	for _, w := range words {
		op := inst.DecodeOp(w)
		if !inst.Valid(op) {
			c.invalid++
			continue
		}
		c.counts[op]++
	}
	return c
}

// Words returns the total number of words scanned.
func (c *Census) Words() int { return c.words }

// Invalid returns the number of words that decode to no defined opcode.
func (c *Census) Invalid() int { return c.invalid }

// Count returns how many words decode to op.
func (c *Census) Count(op inst.Opcode) int {
	if !inst.Valid(op) {
		return 0
	}
	return c.counts[op]
}

// Row is one line of a rendered census.
type Row struct {
	Mnemonic string `json:"mnemonic"`
	Opcode   uint32 `json:"opcode"`
	Count    int    `json:"count"`
}

// Rows returns the non-empty census rows, sorted by count (descending)
// with opcode order breaking ties.
func (c *Census) Rows() []Row {
	rows := make([]Row, 0, inst.OpcodeCount)
	for op := inst.Opcode(0); op < inst.OpcodeCount; op++ {
		if c.counts[op] == 0 {
			continue
		}
		rows = append(rows, Row{
			Mnemonic: inst.Mnemonic(op),
			Opcode:   uint32(op),
			Count:    c.counts[op],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Opcode < rows[j].Opcode
	})
	return rows
}
