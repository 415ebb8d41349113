// Package um implements the universal machine: eight 32-bit registers,
// a segmented memory, and a fetch-decode-execute engine over the
// 14-opcode instruction set of package inst.
package um

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/hnguye18/um/pkg/inst"
)

// NumRegisters is the number of general purpose registers.
const NumRegisters = 8

// The following errors may be returned by Step and Run. All of them
// except ErrHalted are fatal: the machine must not be stepped further.
var (
	// ErrHalted indicates that the machine has halted normally, either
	// by executing HALT or by running off the end of segment 0.
	ErrHalted = errors.New("um: halted")

	// ErrInvalidOpcode indicates an instruction word with an opcode
	// outside the defined range.
	ErrInvalidOpcode = errors.New("um: invalid opcode")

	// ErrDivideByZero indicates a DIV whose divisor register held zero.
	ErrDivideByZero = errors.New("um: division by zero")

	// ErrBadOutput indicates an OUT whose register held a value above 255.
	ErrBadOutput = errors.New("um: output value out of range")

	// ErrInput indicates a host read failure other than end of input.
	ErrInput = errors.New("um: input failure")
)

// Machine is a universal machine instance. The machine is not
// goroutine safe; a single goroutine should manage it.
type Machine struct {
	r   [NumRegisters]uint32
	pc  uint32
	mem *Memory
	in  *bufio.Reader
	out *bufio.Writer
}

// New creates a machine whose segment 0 holds the given program image
// and whose IN and OUT opcodes use the given byte streams. All
// registers start at zero and the program counter at word 0.
func New(program []uint32, in io.Reader, out io.Writer) *Machine {
	return &Machine{
		mem: NewMemory(program),
		in:  bufio.NewReader(in),
		out: bufio.NewWriter(out),
	}
}

// Register returns the value currently in register i.
func (m *Machine) Register(i int) uint32 { return m.r[i] }

// PC returns the current program counter.
func (m *Machine) PC() uint32 { return m.pc }

// Memory returns the machine's segmented memory.
func (m *Machine) Memory() *Memory { return m.mem }

// String generates a string representation of the machine state.
func (m *Machine) String() string {
	return fmt.Sprintf("{pc:%d r:%v segs:%d free:%d}",
		m.pc, m.r, len(m.mem.segs), len(m.mem.free))
}

// Run executes instructions until the machine halts or a fatal
// condition occurs. Buffered output is flushed before returning.
func (m *Machine) Run() error {
	for {
		if err := m.Step(); err != nil {
			flushErr := m.out.Flush()
			if errors.Is(err, ErrHalted) {
				return flushErr
			}
			return err
		}
	}
}

// Step fetches, decodes, and executes exactly one instruction. It
// returns ErrHalted when the program has terminated normally and a
// fatal error otherwise.
func (m *Machine) Step() error {
	prog := m.mem.segs[0]
	if m.pc >= uint32(len(prog)) {
		// Running off the end of segment 0 is normal termination.
		return ErrHalted
	}
	w := prog[m.pc]
	m.pc++

	op := inst.DecodeOp(w)
	if op == inst.LV {
		a, value := inst.DecodeLV(w)
		m.r[a] = value
		return nil
	}

	a, b, c := inst.DecodeABC(w)
	switch op {
	case inst.CMOV:
		if m.r[c] != 0 {
			m.r[a] = m.r[b]
		}
	case inst.SLOAD:
		v, err := m.mem.Get(m.r[b], m.r[c])
		if err != nil {
			return err
		}
		m.r[a] = v
	case inst.SSTORE:
		if err := m.mem.Put(m.r[a], m.r[b], m.r[c]); err != nil {
			return err
		}
	case inst.ADD:
		m.r[a] = m.r[b] + m.r[c]
	case inst.MUL:
		m.r[a] = m.r[b] * m.r[c]
	case inst.DIV:
		if m.r[c] == 0 {
			return fmt.Errorf("%w: at word %d", ErrDivideByZero, m.pc-1)
		}
		m.r[a] = m.r[b] / m.r[c]
	case inst.NAND:
		m.r[a] = ^(m.r[b] & m.r[c])
	case inst.HALT:
		return ErrHalted
	case inst.MAP:
		m.r[b] = m.mem.Map(m.r[c])
	case inst.UNMAP:
		if err := m.mem.Unmap(m.r[c]); err != nil {
			return err
		}
	case inst.OUT:
		return m.output(m.r[c])
	case inst.IN:
		return m.input(c)
	case inst.LOADP:
		// When the source is segment 0 itself there is nothing to
		// copy; the instruction is a plain jump.
		if m.r[b] != 0 {
			if err := m.mem.ReplaceZero(m.r[b]); err != nil {
				return err
			}
		}
		m.pc = m.r[c]
	default:
		return fmt.Errorf("%w: %d in word %#08x at word %d",
			ErrInvalidOpcode, op, w, m.pc-1)
	}
	return nil
}

func (m *Machine) output(v uint32) error {
	if v > 0xFF {
		return fmt.Errorf("%w: %d", ErrBadOutput, v)
	}
	if err := m.out.WriteByte(byte(v)); err != nil {
		return fmt.Errorf("um: output: %w", err)
	}
	return nil
}

func (m *Machine) input(c uint32) error {
	// Anything written so far must be visible before we block on the
	// host stream.
	if err := m.out.Flush(); err != nil {
		return fmt.Errorf("um: output: %w", err)
	}
	b, err := m.in.ReadByte()
	switch {
	case err == nil:
		m.r[c] = uint32(b)
	case errors.Is(err, io.EOF):
		m.r[c] = ^uint32(0)
	default:
		return fmt.Errorf("%w: %v", ErrInput, err)
	}
	return nil
}
