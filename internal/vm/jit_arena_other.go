//go:build !(amd64 && linux)

// jit_arena_other.go - no executable arena outside amd64 Linux

/*
mx26301 - 32-bit Intuition-class virtual machine core

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package vm

// codeArena has no executable mapping on this platform: install always
// returns 0, so compile poisons the PC and no block is ever cached. (On
// amd64 targets other than Linux assembleBlock still emits code; it is
// simply never installed.)
type codeArena struct{}

func newCodeArena() *codeArena { return &codeArena{} }

func (a *codeArena) install(code []byte) uintptr { return 0 }
