package vm

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/intuitionamiga/mx26301/internal/buzzer"
	"github.com/intuitionamiga/mx26301/internal/disk"
	"github.com/intuitionamiga/mx26301/internal/hostbridge"
)

// newTestVM builds a VM with zeroed memory and no bootstrap ROM installed,
// so tests can place their own instruction sequences without the cold-start
// program getting in the way. Headless devices avoid touching any real
// display, audio or disk file.
func newTestVM(t *testing.T) *VM {
	t.Helper()
	v := &VM{
		Mem:          NewMemory(),
		Disk:         disk.Open(filepath.Join(t.TempDir(), "disk.bin")),
		Bridge:       hostbridge.Headless(),
		Buzzer:       buzzer.Headless(),
		rng:          rand.New(rand.NewSource(1)),
		jit:          newJITEngine(),
		jitThreshold: JITHeatThreshold,
		running:      true,
	}
	return v
}
