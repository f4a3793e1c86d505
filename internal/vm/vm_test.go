package vm

import (
	"path/filepath"
	"testing"
)

func TestNewInstallsBootstrapROMAndCapabilityBytes(t *testing.T) {
	v, err := New(Options{
		DiskPath: filepath.Join(t.TempDir(), "disk.bin"),
		Headless: true,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if v.Mem.bytes[BiosStart] != bootstrapROM[0] {
		t.Fatalf("bootstrap ROM not installed at BiosStart")
	}
	if v.Mem.bytes[capGraphicsOffset] != 3 {
		t.Fatalf("capGraphicsOffset = %d, want 3", v.Mem.bytes[capGraphicsOffset])
	}
	if v.Mem.bytes[capDiskOffset] != 1 {
		t.Fatalf("capDiskOffset = %d, want 1", v.Mem.bytes[capDiskOffset])
	}
	if v.cpuBitWidth != 0 {
		t.Fatalf("cpuBitWidth = %d, want 0 (legacy boot) by default", v.cpuBitWidth)
	}
	if !v.Running() {
		t.Fatalf("Running() = false immediately after New()")
	}
}

func TestNewStartIn32BitSkipsLegacyBoot(t *testing.T) {
	v, err := New(Options{
		DiskPath:     filepath.Join(t.TempDir(), "disk.bin"),
		Headless:     true,
		StartIn32Bit: true,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if v.cpuBitWidth != 1 {
		t.Fatalf("cpuBitWidth = %d, want 1", v.cpuBitWidth)
	}
	if v.Regs[PC] != 0x300 {
		t.Fatalf("PC = %#x, want 0x300", v.Regs[PC])
	}
}

func TestNewDefaultsJITThresholdWhenUnset(t *testing.T) {
	v, err := New(Options{DiskPath: filepath.Join(t.TempDir(), "disk.bin"), Headless: true})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if v.jitThreshold != JITHeatThreshold {
		t.Fatalf("jitThreshold = %d, want default %d", v.jitThreshold, JITHeatThreshold)
	}
}

func TestNewHonorsExplicitJITThreshold(t *testing.T) {
	v, err := New(Options{DiskPath: filepath.Join(t.TempDir(), "disk.bin"), Headless: true, JITThreshold: 7})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if v.jitThreshold != 7 {
		t.Fatalf("jitThreshold = %d, want 7", v.jitThreshold)
	}
}

func TestStopHaltsRunLoop(t *testing.T) {
	v := newTestVM(t)
	// Stop() is exercised directly against the running flag that the Run()
	// loop tests on every iteration; Run() itself is not entered here.
	v.Stop()
	if v.Running() {
		t.Fatalf("Running() = true after Stop()")
	}
}

func TestFatalfStopsTheVM(t *testing.T) {
	v := newTestVM(t)
	v.fatalf("synthetic trap for test")
	if v.Running() {
		t.Fatalf("Running() = true after a fatal trap")
	}
}

func TestRunStopsOnHaltOpcode(t *testing.T) {
	v := newTestVM(t)
	v.cpuBitWidth = 1
	place32(v, 0, encode32(0x01, 0, 0, 0, 0, 0)) // halt
	v.Run()
	if v.Running() {
		t.Fatalf("Running() = true after executing halt")
	}
}
