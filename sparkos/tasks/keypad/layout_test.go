package keypad

import (
	"image/color"
	"testing"

	"sparkcalc/hal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutKeysDoNotOverlap(t *testing.T) {
	for _, open := range []bool{false, true} {
		l := layoutScreen(240, 320, 13, open)
		require.NotEmpty(t, l.keys)
		for i, a := range l.keys {
			assert.GreaterOrEqual(t, a.r.y, l.entry.y+l.entry.h, "key %q overlaps entry", a.label)
			assert.LessOrEqual(t, a.r.y+a.r.h, 320, "key %q off screen", a.label)
			for _, b := range l.keys[i+1:] {
				overlap := a.r.x < b.r.x+b.r.w && b.r.x < a.r.x+a.r.w &&
					a.r.y < b.r.y+b.r.h && b.r.y < a.r.y+a.r.h
				assert.False(t, overlap, "%q overlaps %q", a.label, b.label)
			}
			idx, ok := l.hit(a.r.x+a.r.w/2, a.r.y+a.r.h/2)
			assert.True(t, ok)
			assert.Equal(t, i, idx)
		}
	}
}

func TestLayoutHitMissesGaps(t *testing.T) {
	l := layoutScreen(240, 320, 13, false)
	_, ok := l.hit(0, 0)
	assert.False(t, ok, "header is not a key")
	_, ok = l.hit(l.keys[0].r.x+l.keys[0].r.w, l.keys[0].r.y)
	assert.False(t, ok, "gap between keys")
}

func TestLayoutTooSmall(t *testing.T) {
	l := layoutScreen(40, 20, 13, true)
	assert.Empty(t, l.keys)
	assert.Equal(t, 0, l.move(3, 1, 0))
}

func TestLayoutMoveWrapsHorizontally(t *testing.T) {
	l := layoutScreen(240, 320, 13, false)
	assert.Equal(t, len(l.keys)-1, l.move(0, -1, 0))
	assert.Equal(t, 0, l.move(len(l.keys)-1, 1, 0))
}

func TestFillRectangleClips(t *testing.T) {
	fb := hal.NewFramebuffer(8, 4)
	d := newFBDisplay(fb)
	red := color.RGBA{R: 0xFF, A: 0xFF}

	require.NoError(t, d.FillRectangle(-2, 2, 4, 10, red))
	assert.Equal(t, rgb565(red), d.pixelAt(0, 2))
	assert.Equal(t, rgb565(red), d.pixelAt(1, 3))
	assert.Equal(t, uint16(0), d.pixelAt(2, 3))
	assert.Equal(t, uint16(0), d.pixelAt(0, 1))

	d.SetPixel(7, 0, red)
	d.SetPixel(8, 0, red)
	d.SetPixel(-1, -1, red)
	assert.Equal(t, rgb565(red), d.pixelAt(7, 0))

	x, y := d.Size()
	assert.Equal(t, int16(8), x)
	assert.Equal(t, int16(4), y)
	require.NoError(t, d.Display())
}
