//go:build amd64 && linux

// jit_arena_amd64.go - bump-allocated executable arena for compiled blocks

/*
mx26301 - 32-bit Intuition-class virtual machine core

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package vm

import (
	"log"
	"unsafe"

	"golang.org/x/sys/unix"
)

// arenaSize mirrors the original's JIT_MAX_SIZE: a single fixed-size
// mapping shared by every compiled block, bump-allocated and never
// reclaimed.
const arenaSize = 1 << 20

// codeArena is a single PROT_READ|WRITE|EXEC mapping that compiled blocks
// are appended to. A nil mem means mmap failed at startup: install becomes
// a no-op and every compile attempt is treated as a failure, falling back
// to the interpreter.
type codeArena struct {
	mem    []byte
	offset int
}

func newCodeArena() *codeArena {
	mem, err := unix.Mmap(-1, 0, arenaSize, unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		log.Printf("mx26301: jit: executable arena unavailable, running interpreted: %v", err)
		return &codeArena{}
	}
	return &codeArena{mem: mem}
}

// install copies code into the arena and returns its entry address. Callers
// must already have confirmed len(code) > 0.
func (a *codeArena) install(code []byte) uintptr {
	if a.mem == nil || a.offset+len(code) > len(a.mem) {
		return 0
	}
	dst := a.mem[a.offset : a.offset+len(code)]
	copy(dst, code)
	entry := uintptr(unsafe.Pointer(&dst[0]))
	a.offset += len(code)
	return entry
}
