package keypad

import (
	"image/color"

	"sparkcalc/hal"

	"tinygo.org/x/drivers"
)

// fbDisplay adapts an RGB565 hal.Framebuffer to drivers.Displayer so
// tinyfont can draw on it.
type fbDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) usable() bool {
	return d.fb != nil && d.fb.Format() == hal.PixelFormatRGB565 && d.fb.Buffer() != nil
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if !d.usable() {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	buf := d.fb.Buffer()
	off := iy*d.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	p := rgb565(c)
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

// Display presents the frame.
func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

// FillRectangle paints the first row pixel by pixel and copies it down.
func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if !d.usable() {
		return nil
	}
	r := clipRect(rect{x: int(x), y: int(y), w: int(width), h: int(height)}, d.fb.Width(), d.fb.Height())
	if r.empty() {
		return nil
	}

	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	p := rgb565(c)
	lo, hi := byte(p), byte(p>>8)

	first := buf[r.y*stride+r.x*2 : r.y*stride+(r.x+r.w)*2]
	for i := 0; i+1 < len(first); i += 2 {
		first[i] = lo
		first[i+1] = hi
	}
	for row := r.y + 1; row < r.y+r.h; row++ {
		off := row*stride + r.x*2
		copy(buf[off:off+len(first)], first)
	}
	return nil
}

func (d *fbDisplay) SetRotation(drivers.Rotation) error { return nil }

func rgb565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// pixelAt reads back one pixel; used by tests.
func (d *fbDisplay) pixelAt(x, y int) uint16 {
	buf := d.fb.Buffer()
	off := y*d.fb.StrideBytes() + x*2
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}
