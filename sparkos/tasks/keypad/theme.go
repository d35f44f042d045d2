package keypad

import (
	"image/color"

	"sparkcalc/sparkos/services/settings"
)

type palette struct {
	bg      color.RGBA
	screen  color.RGBA
	fg      color.RGBA
	dim     color.RGBA
	key     color.RGBA
	keyOp   color.RGBA
	keyFn   color.RGBA
	keyEq   color.RGBA
	keyText color.RGBA
	eqText  color.RGBA
	pressed color.RGBA
	focus   color.RGBA
	err     color.RGBA
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xFF} }

var (
	lightPalette = palette{
		bg:      rgb(0xE8, 0xEB, 0xF0),
		screen:  rgb(0xFF, 0xFF, 0xFF),
		fg:      rgb(0x1E, 0x22, 0x28),
		dim:     rgb(0x7A, 0x80, 0x8A),
		key:     rgb(0xFF, 0xFF, 0xFF),
		keyOp:   rgb(0xD7, 0xE3, 0xF4),
		keyFn:   rgb(0xE1, 0xE4, 0xEA),
		keyEq:   rgb(0x2F, 0x6F, 0xDE),
		keyText: rgb(0x1E, 0x22, 0x28),
		eqText:  rgb(0xFF, 0xFF, 0xFF),
		pressed: rgb(0xB0, 0xC4, 0xE8),
		focus:   rgb(0x2F, 0x6F, 0xDE),
		err:     rgb(0xF6, 0xD2, 0xD2),
	}
	darkPalette = palette{
		bg:      rgb(0x16, 0x18, 0x1D),
		screen:  rgb(0x22, 0x25, 0x2C),
		fg:      rgb(0xEE, 0xEE, 0xEE),
		dim:     rgb(0x88, 0x88, 0x88),
		key:     rgb(0x2C, 0x30, 0x38),
		keyOp:   rgb(0x33, 0x3D, 0x52),
		keyFn:   rgb(0x26, 0x29, 0x30),
		keyEq:   rgb(0x4A, 0x8B, 0xF5),
		keyText: rgb(0xEE, 0xEE, 0xEE),
		eqText:  rgb(0x10, 0x10, 0x10),
		pressed: rgb(0x55, 0x60, 0x78),
		focus:   rgb(0x4A, 0xD1, 0xFF),
		err:     rgb(0x5A, 0x22, 0x26),
	}
)

func paletteFor(t settings.Theme) *palette {
	if t == settings.ThemeDark {
		return &darkPalette
	}
	return &lightPalette
}
