package vm

// Pixel values of the framebuffer. A pixel is either fully off or fully on.
const (
	PixelOff uint32 = 0
	PixelOn  uint32 = 0xFFFFFFFF
)

// Framebuffer contains the 64x32 display pixels in row major order,
// the pixel at x, y is stored at index y*DisplayWidth + x.
type Framebuffer [DisplayWidth * DisplayHeight]uint32

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// Pixel returns whether the pixel at the given position is on.
// Positions outside of the display are off.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return f[y*DisplayWidth+x] != PixelOff
}

// PixelsOn returns the number of pixels that are on.
func (f *Framebuffer) PixelsOn() int {
	count := 0
	for _, p := range f {
		if p != PixelOff {
			count++
		}
	}
	return count
}

// drawSprite XORs an n byte sprite read from the index register address onto
// the framebuffer. Coordinates wrap around the display edges. VF is set to 1
// if any pixel that was on got turned off, otherwise to 0.
func (m *Machine) drawSprite(x, y, n byte) error {
	if int(m.index)+int(n) > MemorySize {
		return ErrAddressOutOfRange
	}

	x0 := int(m.registers[x])
	y0 := int(m.registers[y])
	m.registers[flagRegister] = 0

	for row := range int(n) {
		spriteByte := m.memory[int(m.index)+row]
		py := (y0 + row) % DisplayHeight

		for col := range 8 {
			if spriteByte&(0x80>>col) == 0 {
				continue
			}

			px := (x0 + col) % DisplayWidth
			pixel := &m.framebuffer[py*DisplayWidth+px]
			if *pixel == PixelOn {
				m.registers[flagRegister] = 1
			}
			*pixel ^= PixelOn
		}
	}
	return nil
}
