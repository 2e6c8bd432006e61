package vm

import (
	"encoding/binary"

	"wabbit/ir"
	"wabbit/util"
)

// allocAlign is the alignment of every allocation: enough for any value type.
const allocAlign = 8

// alloc allocates size bytes of zeroed memory and returns their address.
// Memory grows as needed up to the machine's memory limit.  It is never
// freed: composite values may outlive the frame that allocated them.
func (m *Machine) alloc(size int) int {
	if size < 0 {
		m.fail("invalid allocation size %d", size)
	}

	addr := util.Align(m.heapTop, allocAlign)
	end := addr + size

	if m.memoryLimit > 0 && end > m.memoryLimit {
		m.fail("out of memory allocating %d bytes", size)
	}

	if end > len(m.memory) {
		m.grow(end)
	}

	m.heapTop = end
	return addr
}

// grow extends memory to hold at least minSize bytes.  The size at least
// doubles so repeated allocations take amortized constant time.
func (m *Machine) grow(minSize int) {
	newSize := 2 * len(m.memory)
	if newSize < minSize {
		newSize = minSize
	}

	if m.memoryLimit > 0 && newSize > m.memoryLimit {
		newSize = m.memoryLimit
	}

	m.memory = append(m.memory, make([]byte, newSize-len(m.memory))...)
}

// span returns the size bytes of memory starting at addr.
func (m *Machine) span(addr, size int) []byte {
	if addr < heapBase || size < 0 || addr+size > len(m.memory) {
		m.fail("memory access of %d bytes at address %d out of range", size, addr)
	}

	return m.memory[addr : addr+size]
}

// load reads a value of the given type from memory.
func (m *Machine) load(vt ir.ValueType, addr int) uint64 {
	b := m.span(addr, vt.Size())

	switch vt {
	case ir.I32:
		return uint64(binary.LittleEndian.Uint32(b))
	case ir.F64:
		return binary.LittleEndian.Uint64(b)
	case ir.I8:
		return uint64(b[0])
	case ir.I1:
		return uint64(b[0] & 1)
	}

	m.fail("cannot load a value of type `%s`", vt)
	return 0
}

// store writes a value of the given type to memory.
func (m *Machine) store(vt ir.ValueType, addr int, value uint64) {
	b := m.span(addr, vt.Size())

	switch vt {
	case ir.I32:
		binary.LittleEndian.PutUint32(b, uint32(value))
	case ir.F64:
		binary.LittleEndian.PutUint64(b, value)
	case ir.I8, ir.I1:
		b[0] = uint8(value)
	default:
		m.fail("cannot store a value of type `%s`", vt)
	}
}
