// vm.go - the MX-26301 core: state, MMIO dispatch, and the run loop

/*
mx26301 - 32-bit Intuition-class virtual machine core

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

// Package vm implements the MX-26301 32-bit virtual machine core: flat
// guest memory, the legacy 16-bit and native 32-bit interpreters, the
// tracing JIT, the GPU raster primitives, and the MMIO port map tying them
// to disk, video, audio and input.
package vm

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/intuitionamiga/mx26301/internal/buzzer"
	"github.com/intuitionamiga/mx26301/internal/disk"
	"github.com/intuitionamiga/mx26301/internal/hostbridge"
)

// bootstrapROM is the literal 16-bit program installed at cold start. It
// sets up the disk latch to load sector 0 at 0x200, sets the stack pointer
// and jumps into the loaded boot sector. See original_source/MX-26301/
// emulator/main.cpp for the authoritative byte sequence.
var bootstrapROM = []byte{
	0x20, 0x00, 0x10, // movi r0, 0x10
	0x21, 0x00, 0x00, // movi r1, 0
	0x70, 0x10, 0x00, // out r0, r1 (latch sector)
	0x20, 0x00, 0x11, // movi r0, 0x11
	0x21, 0x02, 0x00, // movi r1, 0x200
	0x70, 0x10, 0x00, // out r0, r1 (latch address)
	0x20, 0x00, 0x12, // movi r0, 0x12
	0x21, 0x00, 0x01, // movi r1, 1
	0x70, 0x10, 0x00, // out r0, r1 (load)
	0x2e, 0xaf, 0xff, // movi r14, 0xafff
	0x2f, 0x02, 0x00, // movi r15, 0x200
}

// capability bytes published at fixed BIOS offsets for the boot sector to
// probe (graphics type, disk ports, buzzer ports, wait port).
const (
	capGraphicsOffset = 0x101
	capDiskOffset     = 0x103
	capBuzzerOffset   = 0x105
	capWaitOffset     = 0x107
)

// JITHeatThreshold is the per-PC hotness count above which the 32-bit
// interpreter hands a block off to the tracing JIT (spec.md §4.5).
const JITHeatThreshold = 50

// bridgeSampleMask gates host-bridge polling (input drain, VRAM publish) to
// once every 8192 cycles, matching the original's `cycles & 8191` check.
const bridgeSampleMask = 0x1FFF

// Options configures VM construction. Zero-value Options uses disk.bin in
// the working directory, opens the shared-memory bridge and the audio
// device (Headless false), uses JITHeatThreshold, and takes the legacy
// 16-bit cold-start path. StartIn32Bit skips the bootstrap ROM entirely and
// starts at PC 0x300.
type Options struct {
	DiskPath     string
	Headless     bool
	StartIn32Bit bool
	JITThreshold int
}

// VM owns guest memory, registers and every attached device.
type VM struct {
	Mem    *Memory
	Regs   Registers
	Disk   *disk.Image
	Bridge *hostbridge.Bridge
	Buzzer *buzzer.Buzzer

	cpuBitWidth uint8 // 0 = legacy 16-bit, 1 = native 32-bit
	running     bool

	diskSector uint32
	diskAddr   uint32

	keyQueue []byte

	rng *rand.Rand

	jit *jitEngine

	jitThreshold int

	cycles uint64
}

// New constructs a cold-started VM: zeroed memory with the bootstrap ROM
// and capability bytes installed, the disk image opened (or defaulted), and
// the host bridge / buzzer wired per opts.
func New(opts Options) (*VM, error) {
	v := &VM{
		Mem:          NewMemory(),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		jitThreshold: opts.JITThreshold,
	}
	if v.jitThreshold <= 0 {
		v.jitThreshold = JITHeatThreshold
	}
	v.jit = newJITEngine()

	copy(v.Mem.bytes[BiosStart:], bootstrapROM)
	v.Mem.bytes[capGraphicsOffset] = 3
	v.Mem.bytes[capDiskOffset] = 1
	v.Mem.bytes[capBuzzerOffset] = 1
	v.Mem.bytes[capWaitOffset] = 2

	diskPath := opts.DiskPath
	if diskPath == "" {
		diskPath = "disk.bin"
	}
	v.Disk = disk.Open(diskPath)

	if opts.Headless {
		v.Bridge = hostbridge.Headless()
		v.Buzzer = buzzer.Headless()
	} else {
		var err error
		v.Bridge, err = hostbridge.New()
		if err != nil {
			log.Printf("mx26301: host bridge unavailable, running blind: %v", err)
		}
		v.Buzzer, err = buzzer.New()
		if err != nil {
			log.Printf("mx26301: audio device unavailable, buzzer silenced: %v", err)
		}
	}

	if opts.StartIn32Bit {
		v.cpuBitWidth = 1
		v.Regs[PC] = 0x300
	}

	v.running = true
	return v, nil
}

// Stop requests the run loop to exit at the next cycle boundary, observed
// rather than acted on immediately so deferred cleanup always runs.
func (v *VM) Stop() { v.running = false }

// Running reports whether the VM has not yet halted or been stopped.
func (v *VM) Running() bool { return v.running }

func (v *VM) fatalf(format string, args ...any) {
	log.Printf("mx26301: "+format, args...)
	v.running = false
}

// Step executes one instruction (or one JIT-compiled block) at the current
// PC, dispatching on cpuBitWidth. The step on which a block is compiled
// executes no instruction and leaves PC unchanged.
func (v *VM) Step() {
	if v.cpuBitWidth == 0 {
		v.stepInterp16()
		return
	}
	v.stepInterp32WithJIT()
}

// stepInterp32WithJIT consults the block cache before falling back to the
// plain interpreter, incrementing the per-PC hotness counter and triggering
// a compile once it crosses jitThreshold (spec.md §4.5).
func (v *VM) stepInterp32WithJIT() {
	pc := v.Regs[PC]
	if blk, ok := v.jit.lookup(pc); ok {
		blk.run(&v.Regs, v.Mem.bytes)
		return
	}

	v.jit.heat[pc]++
	if v.jit.heat[pc] > int32(v.jitThreshold) {
		v.jit.compile(v, pc)
		return
	}

	v.stepInterp32()
}

// Run executes instructions until Stop is called or a fatal trap occurs,
// sampling the host bridge and IPS meter at fixed cycle-count boundaries.
func (v *VM) Run() {
	lastIPSTime := time.Now()
	var cyclesSinceIPS uint64
	var currentIPS float64
	timingCounter := 1_000_000

	for v.running {
		v.Step()
		v.cycles++
		cyclesSinceIPS++
		timingCounter--

		if cyclesSinceIPS&bridgeSampleMask == 0 {
			v.drainInput()
			if v.Mem.Dirty() && v.Bridge != nil {
				v.Bridge.PublishVRAM(v.Mem.bytes[VRAMStart:VRAMEnd])
				v.Bridge.PublishIPS(currentIPS)
				v.Mem.ClearDirty()
			}
		}

		if timingCounter <= 0 {
			now := time.Now()
			elapsed := now.Sub(lastIPSTime).Seconds()
			if elapsed >= 0.5 {
				currentIPS = float64(cyclesSinceIPS) / elapsed
				if v.Bridge != nil {
					v.Bridge.PublishIPS(currentIPS)
				}
				cyclesSinceIPS = 0
				lastIPSTime = now
			}
			timingCounter = 1_000_000
		}
	}
}

// drainInput moves at most one key from the host bridge's mailbox slot into
// the VM's own FIFO, mirroring VM::handleInput in the original run loop.
func (v *VM) drainInput() {
	if v.Bridge == nil {
		return
	}
	if k, ok := v.Bridge.TakeKey(); ok {
		v.keyQueue = append(v.keyQueue, k)
	}
}

func (v *VM) serialChar(c uint8) {
	fmt.Printf("%c", c)
}

func (v *VM) serialIntHex(data uint32) {
	fmt.Printf("%d / 0x%X", data, data)
}

func (v *VM) clockSleepMs(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
