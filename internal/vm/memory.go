// memory.go - flat byte-addressable guest memory with typed access and VRAM dirty tracking

/*
mx26301 - 32-bit Intuition-class virtual machine core

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package vm

// Fixed address ranges, per the published MX-26301 memory map.
const (
	BiosStart  = 0x00000000
	BiosEnd    = 0x000001FF
	BootSector = 0x00000200
	BootEnd    = 0x000003FF

	VRAMStart = 0x00100000
	VRAMEnd   = 0x0014B000 // exclusive

	StackRegionStart = 0xFFFFA000
	StackRegionEnd   = 0xFFFFFFFF

	ScreenWidth  = 640
	ScreenHeight = 480
)

// MemSize32 is the full 32-bit guest address space.
const MemSize32 = 1 << 32

// MemSize16 is the address space visible to the legacy 16-bit interpreter.
const MemSize16 = 1 << 16

// Memory is the VM's flat guest memory. All multi-byte accesses are
// big-endian, matching the original wire format for the boot sector,
// interrupt vectors and instruction immediates.
type Memory struct {
	bytes []byte
	dirty bool
}

// NewMemory allocates a zero-filled 4 GiB guest address space.
func NewMemory() *Memory {
	return &Memory{bytes: make([]byte, MemSize32)}
}

// Len returns the size of the backing array in bytes.
func (m *Memory) Len() int { return len(m.bytes) }

// Bytes exposes the raw backing slice. Used by the GPU raster ops and the
// JIT, which both need direct slice access for performance.
func (m *Memory) Bytes() []byte { return m.bytes }

// Dirty reports whether any store has touched the VRAM range since the last
// ClearDirty call.
func (m *Memory) Dirty() bool { return m.dirty }

// ClearDirty resets the VRAM dirty flag. Called by the host bridge once it
// has copied VRAM into the shared framebuffer mirror.
func (m *Memory) ClearDirty() { m.dirty = false }

// markDirty raises the flag if [addr, addr+size) overlaps the VRAM range.
// A two-byte store straddling the VRAM boundary counts as dirty even when
// only the first byte lies inside it.
func (m *Memory) markDirty(addr uint32, size uint32) {
	end := uint64(addr) + uint64(size)
	if end > uint64(VRAMStart) && uint64(addr) < uint64(VRAMEnd) {
		m.dirty = true
	}
}

// Read8 loads one byte, optionally sign-extended to 32 bits.
func (m *Memory) Read8(addr uint32, signed bool) uint32 {
	v := m.bytes[addr]
	if signed {
		return uint32(int32(int8(v)))
	}
	return uint32(v)
}

// Read16 loads a big-endian 16-bit word, optionally sign-extended.
func (m *Memory) Read16(addr uint32, signed bool) uint32 {
	v := uint16(m.bytes[addr])<<8 | uint16(m.bytes[addr+1])
	if signed {
		return uint32(int32(int16(v)))
	}
	return uint32(v)
}

// Read32 loads a big-endian 32-bit word. There is no narrower-than-32 notion
// of signedness at this width.
func (m *Memory) Read32(addr uint32) uint32 {
	b := m.bytes
	return uint32(b[addr])<<24 | uint32(b[addr+1])<<16 | uint32(b[addr+2])<<8 | uint32(b[addr+3])
}

// Write8 stores one byte and raises the VRAM dirty flag if applicable.
func (m *Memory) Write8(addr uint32, val uint8) {
	m.bytes[addr] = val
	m.markDirty(addr, 1)
}

// Write16 stores a big-endian 16-bit word.
func (m *Memory) Write16(addr uint32, val uint16) {
	m.bytes[addr] = byte(val >> 8)
	m.bytes[addr+1] = byte(val)
	m.markDirty(addr, 2)
}

// Write32 stores a big-endian 32-bit word.
func (m *Memory) Write32(addr uint32, val uint32) {
	b := m.bytes
	b[addr] = byte(val >> 24)
	b[addr+1] = byte(val >> 16)
	b[addr+2] = byte(val >> 8)
	b[addr+3] = byte(val)
	m.markDirty(addr, 4)
}

// InVRAM reports whether addr falls inside the VRAM mirror range.
func InVRAM(addr uint32) bool {
	return addr >= VRAMStart && addr < VRAMEnd
}
