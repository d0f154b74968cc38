package gfx

import "image/color"

// Palette used by the keypad. The 16-bit values are the panel's native
// RGB565 encodings.
var (
	Black = FromRGB565(0x0000)
	White = FromRGB565(0xFFFF)
	Red   = FromRGB565(0xF800)
)

// RGB565 packs c as rrrrrggggggbbbbb.
func RGB565(c color.RGBA) uint16 {
	return uint16((uint16(c.R>>3)&0x1F)<<11 | (uint16(c.G>>2)&0x3F)<<5 | (uint16(c.B>>3) & 0x1F))
}

// FromRGB565 expands a packed pixel to full range RGBA.
func FromRGB565(p uint16) color.RGBA {
	r := (p >> 11) & 0x1F
	g := (p >> 5) & 0x3F
	b := p & 0x1F
	return color.RGBA{
		R: uint8((r * 255) / 31),
		G: uint8((g * 255) / 63),
		B: uint8((b * 255) / 31),
		A: 0xFF,
	}
}
