//go:build !amd64

// jit_codegen_other.go - JIT disabled on non-amd64 targets

/*
mx26301 - 32-bit Intuition-class virtual machine core

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package vm

// assembleBlock never compiles anything on architectures without a native
// codegen backend; the 32-bit interpreter runs every instruction instead.
func assembleBlock(mem []byte, pc uint32) ([]byte, uint32, bool) {
	return nil, pc, false
}
