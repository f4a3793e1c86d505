// gpu.go - raster primitives operating directly on the VRAM mirror

/*
mx26301 - 32-bit Intuition-class virtual machine core

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package vm

// gpuClear fills [x1,x2) x [y1,y2) with color, normalizing swapped corners
// first. Rows outside the screen are skipped; no column clipping is applied
// beyond the backing-array bounds check per row.
func (m *Memory) gpuClear(topLeft, bottomRight uint32, color uint8) {
	x1, y1 := int(topLeft>>16), int(topLeft & 0xFFFF)
	x2, y2 := int(bottomRight>>16), int(bottomRight & 0xFFFF)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}

	for y := y1; y < y2; y++ {
		if y < 0 || y >= ScreenHeight {
			continue
		}
		lineStart := uint32(VRAMStart) + uint32(y*ScreenWidth+x1)
		width := x2 - x1
		if uint64(lineStart)+uint64(width) <= uint64(m.Len()) {
			row := m.bytes[lineStart : lineStart+uint32(width)]
			for i := range row {
				row[i] = color
			}
		}
	}
	m.dirty = true
}

// gpuBlit copies a w x h block of scanline-contiguous bytes from src to dest,
// both addressed with SCREEN_WIDTH stride. Rows that would run off the end
// of memory are skipped individually.
func (m *Memory) gpuBlit(src, dest uint32, w, h int) {
	for y := 0; y < h; y++ {
		curSrc := src + uint32(y*ScreenWidth)
		curDest := dest + uint32(y*ScreenWidth)
		if uint64(curSrc)+uint64(w) <= uint64(m.Len()) && uint64(curDest)+uint64(w) <= uint64(m.Len()) {
			copy(m.bytes[curDest:curDest+uint32(w)], m.bytes[curSrc:curSrc+uint32(w)])
		}
	}
	m.dirty = true
}

// gpuRect draws an unfilled rectangle outline. It does not clip to the
// screen: an out-of-range corner indexes memory directly, matching the
// original's unchecked std::vector access.
func (m *Memory) gpuRect(topLeft, bottomRight uint32, color uint8) {
	x1, y1 := int(topLeft>>16), int(topLeft & 0xFFFF)
	x2, y2 := int(bottomRight>>16), int(bottomRight & 0xFFFF)

	for x := x1; x <= x2; x++ {
		m.bytes[uint32(VRAMStart)+uint32(y1*ScreenWidth+x)] = color
		m.bytes[uint32(VRAMStart)+uint32(y2*ScreenWidth+x)] = color
	}
	for y := y1; y <= y2; y++ {
		m.bytes[uint32(VRAMStart)+uint32(y*ScreenWidth+x1)] = color
		m.bytes[uint32(VRAMStart)+uint32(y*ScreenWidth+x2)] = color
	}
	m.dirty = true
}

// gpuRectFill draws a filled, screen-clipped, corner-normalized rectangle.
func (m *Memory) gpuRectFill(topLeft, bottomRight uint32, color uint8) {
	x1, y1 := int(topLeft>>16), int(topLeft & 0xFFFF)
	x2, y2 := int(bottomRight>>16), int(bottomRight & 0xFFFF)

	x1 = clampInt(x1, 0, ScreenWidth)
	x2 = clampInt(x2, 0, ScreenWidth)
	y1 = clampInt(y1, 0, ScreenHeight)
	y2 = clampInt(y2, 0, ScreenHeight)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}

	for y := y1; y < y2; y++ {
		rowStart := uint32(VRAMStart) + uint32(y*ScreenWidth+x1)
		row := m.bytes[rowStart : rowStart+uint32(x2-x1)]
		for i := range row {
			row[i] = color
		}
	}
	m.dirty = true
}

// gpuLine draws a Bresenham line, clipping each plotted point to the VRAM
// range individually.
func (m *Memory) gpuLine(start, end uint32, color uint8) {
	x1, y1 := int(start>>16), int(start & 0xFFFF)
	x2, y2 := int(end>>16), int(end & 0xFFFF)

	dx, dy := absInt(x2-x1), absInt(y2-y1)
	sx, sy := 1, 1
	if x1 >= x2 {
		sx = -1
	}
	if y1 >= y2 {
		sy = -1
	}
	err := dx - dy

	for {
		idx := uint32(VRAMStart) + uint32(y1*ScreenWidth+x1)
		if idx >= uint32(VRAMStart) && idx < uint32(VRAMEnd) {
			m.bytes[idx] = color
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
	m.dirty = true
}

// gpuCirc draws an unfilled circle outline via the midpoint algorithm.
func (m *Memory) gpuCirc(centerPos, radiusReg uint32, color uint8) {
	cx, cy := int(centerPos>>16), int(centerPos & 0xFFFF)
	r := int(radiusReg & 0xFFFF)

	plot := func(px, py int) {
		if px >= 0 && px < ScreenWidth && py >= 0 && py < ScreenHeight {
			m.bytes[uint32(VRAMStart)+uint32(py*ScreenWidth+px)] = color
		}
	}

	x, y, err := r, 0, 1-r
	for x >= y {
		plot(cx+x, cy+y)
		plot(cx-x, cy+y)
		plot(cx+x, cy-y)
		plot(cx-x, cy-y)
		plot(cx+y, cy+x)
		plot(cx-y, cy+x)
		plot(cx+y, cy-x)
		plot(cx-y, cy-x)

		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
	m.dirty = true
}

// gpuCircFill draws a filled circle via the midpoint algorithm, drawing
// horizontal spans at each scanline instead of individual points.
func (m *Memory) gpuCircFill(centerPos, radiusReg uint32, color uint8) {
	cx, cy := int(centerPos>>16), int(centerPos & 0xFFFF)
	r := int(radiusReg & 0xFFFF)

	drawLine := func(xa, xb, py int) {
		if py < 0 || py >= ScreenHeight {
			return
		}
		left := clampInt(xa, 0, ScreenWidth-1)
		right := clampInt(xb, 0, ScreenWidth-1)
		if left > right {
			left, right = right, left
		}
		width := right - left + 1
		if width <= 0 {
			return
		}
		addr := uint32(VRAMStart) + uint32(py*ScreenWidth+left)
		if uint64(addr)+uint64(width) <= uint64(m.Len()) {
			row := m.bytes[addr : addr+uint32(width)]
			for i := range row {
				row[i] = color
			}
		}
	}

	x, y, err := r, 0, 1-r
	for x >= y {
		drawLine(cx-x, cx+x, cy+y)
		drawLine(cx-x, cx+x, cy-y)
		drawLine(cx-y, cx+y, cy+x)
		drawLine(cx-y, cx+y, cy-x)

		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
	m.dirty = true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
