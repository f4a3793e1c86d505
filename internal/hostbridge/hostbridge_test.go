package hostbridge

import "testing"

func TestHeadlessIsSafeNoOp(t *testing.T) {
	b := Headless()
	if b.Live() {
		t.Fatalf("Headless() bridge reports Live()")
	}

	b.PublishVRAM(make([]byte, vramSize32))
	b.PublishIPS(123.4)
	b.SetVideoMode(2)
	if mode := b.VideoMode(); mode != 0 {
		t.Fatalf("VideoMode() = %d, want 0 on headless bridge", mode)
	}
	if _, ok := b.TakeKey(); ok {
		t.Fatalf("TakeKey() returned ok=true on headless bridge")
	}
	if b.MouseX() != 0 || b.MouseY() != 0 || b.MouseButton() != 0 {
		t.Fatalf("mouse fields non-zero on headless bridge")
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close() on headless bridge returned %v, want nil", err)
	}
}

func TestOpenLayout32BitIncludesMouseFields(t *testing.T) {
	b := &Bridge{vramSize: vramSize32}
	b.offIPS = b.vramSize
	b.offMode = b.offIPS + 8
	b.offKey = b.offMode + 1
	b.offMouseX = b.offKey + 1
	b.offMouseY = b.offMouseX + 2
	b.offMouseBtn = b.offMouseY + 2

	if b.offIPS != vramSize32 {
		t.Fatalf("offIPS = %d, want %d", b.offIPS, vramSize32)
	}
	if b.offMode != vramSize32+8 {
		t.Fatalf("offMode = %d, want %d", b.offMode, vramSize32+8)
	}
	if b.offMouseBtn <= b.offMouseY {
		t.Fatalf("offMouseBtn (%d) does not follow offMouseY (%d)", b.offMouseBtn, b.offMouseY)
	}
}

func TestLegacyLayoutCarriesNoMouseFields(t *testing.T) {
	b := &Bridge{vramSize: vramSize16, legacy: true, region: make([]byte, vramSize16+8+1+1)}
	b.offIPS = vramSize16
	b.offMode = b.offIPS + 8
	b.offKey = b.offMode + 1

	if b.MouseX() != 0 || b.MouseY() != 0 || b.MouseButton() != 0 {
		t.Fatalf("legacy bridge exposed non-zero mouse fields")
	}
}

func TestTakeKeyDrainsSingleSlot(t *testing.T) {
	b := &Bridge{region: make([]byte, 16)}
	b.offKey = 10
	b.region[b.offKey] = 'x'

	k, ok := b.TakeKey()
	if !ok || k != 'x' {
		t.Fatalf("TakeKey() = (%v, %v), want ('x', true)", k, ok)
	}
	if _, ok := b.TakeKey(); ok {
		t.Fatalf("TakeKey() did not clear the slot after draining")
	}
}

func TestPublishVRAMTruncatesOversizedSource(t *testing.T) {
	b := &Bridge{region: make([]byte, 4), vramSize: 4}
	src := []byte{1, 2, 3, 4, 5, 6}
	b.PublishVRAM(src)
	for i := 0; i < 4; i++ {
		if b.region[i] != src[i] {
			t.Fatalf("region[%d] = %d, want %d", i, b.region[i], src[i])
		}
	}
}
