//go:build amd64 && linux

// jit_call_amd64.go - Go-side declaration of the native block call trampoline

/*
mx26301 - 32-bit Intuition-class virtual machine core

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package vm

// runJITBlock calls the compiled block at entry, passing regs in RCX and
// mem in RDX -- the register convention the emitted MOV/ADD/SUB/MUL byte
// sequences address through (carried over unchanged from the original's
// Windows x64 fastcall JIT, where the first argument also arrives in RCX).
// Implemented in jit_call_amd64.s.
//
//go:noescape
func runJITBlock(entry uintptr, regs *Registers, mem []byte)
