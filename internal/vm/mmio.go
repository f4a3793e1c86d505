// mmio.go - the 32-bit interpreter's MMIO port dispatch (OUT/IN) and disk I/O

/*
mx26301 - 32-bit Intuition-class virtual machine core

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package vm

import (
	"fmt"
	"math"

	"github.com/intuitionamiga/mx26301/internal/disk"
)

// out implements the OUT r_a, r_b instruction's port dispatch for the native
// 32-bit mode (spec.md §6.2). Ports not listed are no-ops.
func (v *VM) out(port, data uint32) {
	switch port {
	case 0x01:
		v.serialChar(uint8(data))
	case 0x02:
		fmt.Printf("%d", data)
	case 0x03:
		fmt.Printf("%d", int32(data))
	case 0x04:
		fmt.Printf("%X", data)
	case 0x05:
		fmt.Printf("%.4f", math.Float32frombits(data))
	case 0x10:
		v.diskSector = data
	case 0x11:
		v.diskAddr = data
	case 0x12:
		v.diskCommand(data, MemSize32)
	case 0x20:
		v.Bridge.SetVideoMode(uint8(data))
	case 0x30:
		v.Buzzer.SetFrequency(data)
	case 0x31:
		v.Buzzer.SetDuration(data)
	case 0x32:
		v.Buzzer.Trigger()
	}
}

// in implements the IN r_a, r_b instruction's port dispatch.
func (v *VM) in(port uint32) uint32 {
	switch port {
	case 0x01:
		if len(v.keyQueue) == 0 {
			return 0
		}
		k := v.keyQueue[0]
		v.keyQueue = v.keyQueue[1:]
		return uint32(k)
	case 0x02:
		if v.Bridge != nil {
			return uint32(v.Bridge.MouseX())
		}
	case 0x03:
		if v.Bridge != nil {
			return uint32(v.Bridge.MouseY())
		}
	case 0x04:
		if v.Bridge != nil {
			return uint32(v.Bridge.MouseButton())
		}
	case 0xFF:
		return 0x26301
	}
	return 0
}

// diskCommand implements the latched sector/address disk transfer (ports
// 0x10/0x11/0x12): 1 loads a 512-byte sector into guest memory at the
// latched address, 2 saves 512 bytes of guest memory at the latched address
// to the latched sector. addrSpace bounds the wraparound arithmetic: the
// legacy 16-bit interpreter wraps at 64 KiB, the 32-bit interpreter at 4 GiB
// (spec.md §4.7).
func (v *VM) diskCommand(cmd uint32, addrSpace uint64) {
	switch cmd {
	case 1: // load
		var buf [disk.SectorSize]byte
		v.Disk.ReadSector(v.diskSector, buf[:])
		for i, b := range buf {
			v.Mem.bytes[(uint64(v.diskAddr)+uint64(i))%addrSpace] = b
		}
		v.Mem.markDirty(v.diskAddr, disk.SectorSize)
	case 2: // save
		var buf [disk.SectorSize]byte
		if uint64(v.diskAddr)+disk.SectorSize <= addrSpace {
			copy(buf[:], v.Mem.bytes[v.diskAddr:uint64(v.diskAddr)+disk.SectorSize])
		} else {
			firstPart := addrSpace - uint64(v.diskAddr)
			copy(buf[:firstPart], v.Mem.bytes[v.diskAddr:addrSpace])
			copy(buf[firstPart:], v.Mem.bytes[0:disk.SectorSize-firstPart])
		}
		v.Disk.WriteSector(v.diskSector, buf[:])
	}
}
