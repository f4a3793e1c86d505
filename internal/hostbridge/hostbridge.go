// hostbridge.go - shared-memory framebuffer/input mailbox bridge to the display/input host process

/*
mx26301 - 32-bit Intuition-class virtual machine core

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

// Package hostbridge implements the named shared-memory region the VM uses
// to publish its framebuffer and sample keyboard/mouse input, without any
// locking: the contract is "reader sees the most recent snapshot, possibly
// torn at the byte level" for video, and "writer-clears, reader-writes" for
// the single key slot (single-producer single-consumer by construction).
//
// The original VM uses a Win32 named file mapping (CreateFileMappingA /
// MapViewOfFile). This is the POSIX equivalent: an mmap'd region backed by a
// file under /dev/shm (or $XDG_RUNTIME_DIR, mirroring the fallback idiom the
// rest of this codebase uses for its Unix-domain control socket).
package hostbridge

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// VRAM mirror size for the 32-bit family: 640x480 paletted bytes. The legacy
// 16-bit variant mirrors a much smaller 2,000-byte text/tile plane instead
// and carries no mouse fields (spec.md §6.1).
const (
	vramSize32 = 307200
	vramSize16 = 2000
)

const shmName = "mx26301_vm_sharedmemory"

// Bridge owns the mmap'd shared-memory mailbox. A Bridge with a nil region
// is still safe to use: all operations become no-ops, matching the "video
// is blind" degrade-gracefully policy for hosts that cannot create shared
// memory.
type Bridge struct {
	region []byte
	path   string

	// Layout offsets, fixed at construction time by the selected variant.
	vramSize    int
	offIPS      int
	offMode     int
	offKey      int
	offMouseX   int
	offMouseY   int
	offMouseBtn int
	legacy      bool
}

// shmPath resolves the backing file location, preferring a tmpfs-backed
// runtime directory so the mapping never touches a real disk.
func shmPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, shmName)
	}
	return filepath.Join("/dev/shm", shmName)
}

// New creates (or truncates) the backing file and maps it PROT_READ|PROT_WRITE,
// MAP_SHARED so a separate display/input process mapping the same path
// observes every write immediately. A failure here is a host resource
// failure (SPEC_FULL.md §7 kind 3): New returns a usable, blind Bridge
// together with the error so the caller can log and continue running.
func New() (*Bridge, error) { return open(vramSize32, false) }

// NewLegacy maps the narrower 16-bit-mode layout: a 2,000-byte VRAM mirror,
// a single-byte key slot, and no mouse fields.
func NewLegacy() (*Bridge, error) { return open(vramSize16, true) }

// Headless returns a Bridge with no backing mapping: every method becomes a
// no-op, for --headless runs that never create shared memory.
func Headless() *Bridge { return &Bridge{} }

func open(vramSize int, legacy bool) (*Bridge, error) {
	b := &Bridge{vramSize: vramSize, legacy: legacy}
	b.offIPS = vramSize
	b.offMode = b.offIPS + 8
	b.offKey = b.offMode + 1
	regionSize := b.offKey + 1
	if !legacy {
		b.offMouseX = b.offKey + 1
		b.offMouseY = b.offMouseX + 2
		b.offMouseBtn = b.offMouseY + 2
		regionSize = b.offMouseBtn + 1
	}

	path := shmPath()
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return &Bridge{}, fmt.Errorf("hostbridge: open %s: %w", path, err)
	}
	defer f.Close()

	if err := f.Truncate(int64(regionSize)); err != nil {
		return &Bridge{}, fmt.Errorf("hostbridge: truncate %s: %w", path, err)
	}

	region, err := unix.Mmap(int(f.Fd()), 0, regionSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return &Bridge{}, fmt.Errorf("hostbridge: mmap %s: %w", path, err)
	}

	b.region = region
	b.path = path
	return b, nil
}

// Close unmaps the shared region and removes the backing file.
func (b *Bridge) Close() error {
	if b.region == nil {
		return nil
	}
	err := unix.Munmap(b.region)
	b.region = nil
	os.Remove(b.path)
	return err
}

// Live reports whether the shared-memory mapping is usable.
func (b *Bridge) Live() bool { return b.region != nil }

// PublishVRAM copies the VRAM range into the shared mirror. src is truncated
// to the variant's mirror size if larger.
func (b *Bridge) PublishVRAM(vram []byte) {
	if b.region == nil {
		return
	}
	if len(vram) > b.vramSize {
		vram = vram[:b.vramSize]
	}
	copy(b.region[0:b.vramSize], vram)
}

// PublishIPS writes the measured instructions-per-second sample.
func (b *Bridge) PublishIPS(ips float64) {
	if b.region == nil {
		return
	}
	binary.LittleEndian.PutUint64(b.region[b.offIPS:b.offIPS+8], math.Float64bits(ips))
}

// VideoMode returns the current video_mode byte (host-writable by the guest
// via OUT 0x20, surfaced here for a display process that wants to poll it).
func (b *Bridge) VideoMode() byte {
	if b.region == nil {
		return 0
	}
	return b.region[b.offMode]
}

// SetVideoMode stores the video_mode byte published by the guest.
func (b *Bridge) SetVideoMode(mode byte) {
	if b.region == nil {
		return
	}
	b.region[b.offMode] = mode
}

// TakeKey drains the single host-written key slot and clears it, implementing
// the writer-clears/reader-writes contract. Returns true if a key was
// present. The VM's IN-port handler is responsible for queuing drained keys
// into its own FIFO ahead of guest reads (spec.md §6.2, IN port 0x01).
func (b *Bridge) TakeKey() (byte, bool) {
	if b.region == nil {
		return 0, false
	}
	k := b.region[b.offKey]
	if k == 0 {
		return 0, false
	}
	b.region[b.offKey] = 0
	return k, true
}

// MouseX, MouseY, MouseButton read the current pointer state. Values above
// the nominal 640x480 screen are not constrained (spec.md §9). They always
// read zero on a legacy-layout bridge, which carries no mouse fields.
func (b *Bridge) MouseX() uint16 {
	if b.region == nil || b.legacy {
		return 0
	}
	return binary.LittleEndian.Uint16(b.region[b.offMouseX : b.offMouseX+2])
}

func (b *Bridge) MouseY() uint16 {
	if b.region == nil || b.legacy {
		return 0
	}
	return binary.LittleEndian.Uint16(b.region[b.offMouseY : b.offMouseY+2])
}

func (b *Bridge) MouseButton() byte {
	if b.region == nil || b.legacy {
		return 0
	}
	return b.region[b.offMouseBtn]
}

