package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"

	"sparkcalc/hal"

	"go.uber.org/zap"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// guardStep turns a panic inside step into an error, after logging the stack
// and painting it on the framebuffer.
func guardStep(h hal.HAL, log *zap.Logger, step func() error) func() error {
	return func() (err error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			stack := string(debug.Stack())
			log.Error("step panicked", zap.Any("panic", v), zap.String("stack", stack))
			drawPanic(h, v, stack)
			err = fmt.Errorf("panic: %v", v)
		}()
		return step()
	}
}

func drawPanic(h hal.HAL, v any, stack string) {
	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	fb.ClearRGB(255, 255, 255)

	font := &proggy.TinySZ8pt7b
	lineH := int16(font.GetYAdvance())
	if lineH <= 0 {
		_ = fb.Present()
		return
	}

	lines := []string{"SparkCalc panic:", fmt.Sprint(v)}
	for _, line := range strings.Split(stack, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	d := panicDisplay{fb: fb}
	fg := color.RGBA{A: 255}
	y := lineH
	for _, line := range lines {
		if int(y) > fb.Height() {
			break
		}
		tinyfont.WriteLine(d, font, 0, y, line, fg)
		y += lineH
	}
	_ = fb.Present()
}

// panicDisplay is a minimal drivers.Displayer for the panic screen.
type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) { return int16(d.fb.Width()), int16(d.fb.Height()) }

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || int(x) >= d.fb.Width() || int(y) >= d.fb.Height() {
		return
	}
	buf := d.fb.Buffer()
	off := int(y)*d.fb.StrideBytes() + int(x)*2
	if off+1 >= len(buf) {
		return
	}
	p := uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

func (d panicDisplay) Display() error { return d.fb.Present() }
func (d panicDisplay) SetRotation(drivers.Rotation) error { return nil }
func (d panicDisplay) FillRectangle(x, y, w, h int16, c color.RGBA) error {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			d.SetPixel(px, py, c)
		}
	}
	return nil
}
