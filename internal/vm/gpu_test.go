package vm

import "testing"

func pos(x, y int) uint32 { return uint32(x)<<16 | uint32(y&0xFFFF) }

func pixelAt(m *Memory, x, y int) byte {
	return m.bytes[uint32(VRAMStart)+uint32(y*ScreenWidth+x)]
}

func TestGpuRectFillNormalizesSwappedCorners(t *testing.T) {
	m := NewMemory()
	// bottom-right given before top-left: corners must be swapped, not
	// silently drawn as an empty (or negative-width) rectangle.
	m.gpuRectFill(pos(10, 10), pos(2, 2), 7)

	for y := 2; y < 10; y++ {
		for x := 2; x < 10; x++ {
			if got := pixelAt(m, x, y); got != 7 {
				t.Fatalf("pixel (%d,%d) = %d, want 7", x, y, got)
			}
		}
	}
	if got := pixelAt(m, 1, 1); got != 0 {
		t.Fatalf("pixel outside the rectangle was painted: %d", got)
	}
}

func TestGpuRectFillClipsToScreen(t *testing.T) {
	m := NewMemory()
	m.gpuRectFill(pos(-5, -5), pos(5, 5), 3)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if got := pixelAt(m, x, y); got != 3 {
				t.Fatalf("pixel (%d,%d) = %d, want 3", x, y, got)
			}
		}
	}
}

func TestGpuLineBresenhamDiagonal(t *testing.T) {
	m := NewMemory()
	m.gpuLine(pos(0, 0), pos(4, 4), 9)
	for i := 0; i <= 4; i++ {
		if got := pixelAt(m, i, i); got != 9 {
			t.Fatalf("diagonal pixel (%d,%d) = %d, want 9", i, i, got)
		}
	}
}

func TestGpuLineHorizontal(t *testing.T) {
	m := NewMemory()
	m.gpuLine(pos(2, 5), pos(8, 5), 4)
	for x := 2; x <= 8; x++ {
		if got := pixelAt(m, x, 5); got != 4 {
			t.Fatalf("pixel (%d,5) = %d, want 4", x, got)
		}
	}
}

func TestGpuCircOutlineHitsCardinalPoints(t *testing.T) {
	m := NewMemory()
	m.gpuCirc(pos(100, 100), uint32(10), 5)

	cardinals := [][2]int{{110, 100}, {90, 100}, {100, 110}, {100, 90}}
	for _, p := range cardinals {
		if got := pixelAt(m, p[0], p[1]); got != 5 {
			t.Fatalf("cardinal point (%d,%d) = %d, want 5", p[0], p[1], got)
		}
	}
}

func TestGpuCircFillPaintsCenter(t *testing.T) {
	m := NewMemory()
	m.gpuCircFill(pos(50, 50), uint32(8), 6)
	if got := pixelAt(m, 50, 50); got != 6 {
		t.Fatalf("center pixel = %d, want 6", got)
	}
	if got := pixelAt(m, 50, 49+8+5); got != 0 {
		t.Fatalf("pixel well outside the filled circle was painted: %d", got)
	}
}

func TestGpuCircClipsOffscreenPoints(t *testing.T) {
	m := NewMemory()
	// Center near the screen edge: outline points beyond ScreenWidth must be
	// silently dropped rather than panicking or wrapping onto another row.
	m.gpuCirc(pos(ScreenWidth-1, 0), uint32(20), 1)
	if got := pixelAt(m, ScreenWidth-1, 0); got != 0 && got != 1 {
		t.Fatalf("unexpected pixel state at center: %d", got)
	}
}

func TestGpuClearNormalizesAndFills(t *testing.T) {
	m := NewMemory()
	m.gpuClear(pos(5, 5), pos(1, 1), 2)
	for y := 1; y < 5; y++ {
		for x := 1; x < 5; x++ {
			if got := pixelAt(m, x, y); got != 2 {
				t.Fatalf("pixel (%d,%d) = %d, want 2", x, y, got)
			}
		}
	}
}

func TestGpuBlitCopiesScanlines(t *testing.T) {
	m := NewMemory()
	src := uint32(VRAMStart)
	dest := uint32(VRAMStart) + uint32(20*ScreenWidth)

	for x := 0; x < 4; x++ {
		m.bytes[src+uint32(x)] = byte(x + 1)
	}
	m.gpuBlit(src, dest, 4, 1)
	for x := 0; x < 4; x++ {
		if got := m.bytes[dest+uint32(x)]; got != byte(x+1) {
			t.Fatalf("blitted byte %d = %d, want %d", x, got, x+1)
		}
	}
}
