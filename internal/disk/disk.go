// disk.go - sector-addressable disk image backed by a host file

/*
mx26301 - 32-bit Intuition-class virtual machine core

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

// Package disk implements the VM's backing store: a flat, headerless
// sequence of 512-byte sectors persisted to a single host file and
// rewritten in full on every save.
package disk

import (
	"log"
	"os"
)

// SectorSize is the disk addressing granularity.
const SectorSize = 512

// DefaultSize is the default image size (1,440 KiB, a stock 3.5" floppy),
// used to seed an in-memory disk when no backing file exists yet.
const DefaultSize = 1440 * 1024

// Image is an in-memory copy of the disk contents, mirrored to a host file.
type Image struct {
	path string
	data []byte
}

// Open loads path into memory. A missing file is not an error: per the
// host-resource-failure policy, the VM starts with an in-memory zero-filled
// disk of DefaultSize and the first save creates the file.
func Open(path string) *Image {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("mx26301: disk: no existing image at %s, starting blank (%v)", path, err)
		data = make([]byte, DefaultSize)
	}
	return &Image{path: path, data: data}
}

// Size returns the image size in bytes.
func (img *Image) Size() int { return len(img.data) }

// ReadSector copies 512 bytes starting at sector*SectorSize into dst.
// It is a no-op if the sector range falls outside the image, matching the
// original's bounds-checked load.
func (img *Image) ReadSector(sector uint32, dst []byte) {
	start := uint64(sector) * SectorSize
	if start+SectorSize > uint64(len(img.data)) {
		return
	}
	copy(dst, img.data[start:start+SectorSize])
}

// WriteSector stores 512 bytes of src at sector*SectorSize and rewrites the
// entire backing file. The write is best-effort durable: the file is
// recreated, the whole image written once and then Synced, with failures
// logged rather than fatal
// (see SPEC_FULL.md §9, Open Questions).
func (img *Image) WriteSector(sector uint32, src []byte) {
	start := uint64(sector) * SectorSize
	needed := start + SectorSize
	if needed > uint64(len(img.data)) {
		grown := make([]byte, needed)
		copy(grown, img.data)
		img.data = grown
	}
	copy(img.data[start:start+SectorSize], src)
	img.flush()
}

func (img *Image) flush() {
	f, err := os.Create(img.path)
	if err != nil {
		log.Printf("mx26301: disk: save failed: %v", err)
		return
	}
	defer f.Close()
	if _, err := f.Write(img.data); err != nil {
		log.Printf("mx26301: disk: save failed: %v", err)
		return
	}
	if err := f.Sync(); err != nil {
		log.Printf("mx26301: disk: sync failed (best-effort durability): %v", err)
	}
}
