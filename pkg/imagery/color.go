package imagery

import (
	"fmt"
	"image/color"
	"strings"
)

// Palette names a colour model. Colours constructed through a palette are
// resolved to 8-bit RGBA before reaching the underlying image library.
type Palette string

const (
	PaletteGrayscale Palette = "grayscale"
	PaletteRGB       Palette = "rgb"
	PaletteCMYK      Palette = "cmyk"
)

// Gray builds a grayscale colour from a single 0-255 level.
func Gray(level uint8) color.NRGBA {
	return color.NRGBA{R: level, G: level, B: level, A: 0xff}
}

// RGB builds an opaque colour from 8-bit channels.
func RGB(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// RGBA builds a colour with an explicit alpha channel.
func RGBA(r, g, b, a uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// CMYK converts 0-100 ink percentages to RGB. Values above 100 are clamped.
func CMYK(c, m, y, k uint8) color.NRGBA {
	r, g, b := color.CMYKToRGB(
		percentToByte(c),
		percentToByte(m),
		percentToByte(y),
		percentToByte(k),
	)
	var out color.NRGBA
	out.R, out.G, out.B = r, g, b
	out.A = 0xff
	return out
}

func percentToByte(percent uint8) uint8 {
	if percent > 100 {
		percent = 100
	}
	return uint8(uint16(percent) * 255 / 100)
}

// ParseHex parses "#RGB", "#RGBA", "#RRGGBB" and "#RRGGBBAA" colour strings.
// The leading hash is optional.
func ParseHex(raw string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(raw), "#")

	var expand bool
	switch len(hex) {
	case 3, 4:
		expand = true
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("imagery: invalid hex color %q", raw)
	}

	nibbles := make([]uint8, len(hex))
	for i, r := range hex {
		value, ok := hexNibble(r)
		if !ok {
			return color.NRGBA{}, fmt.Errorf("imagery: invalid hex color %q", raw)
		}
		nibbles[i] = value
	}

	var channels []uint8
	if expand {
		channels = make([]uint8, 0, len(nibbles))
		for _, n := range nibbles {
			channels = append(channels, n<<4|n)
		}
	} else {
		channels = make([]uint8, 0, len(nibbles)/2)
		for i := 0; i < len(nibbles); i += 2 {
			channels = append(channels, nibbles[i]<<4|nibbles[i+1])
		}
	}

	out := color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: 0xff}
	if len(channels) == 4 {
		out.A = channels[3]
	}
	return out, nil
}

func hexNibble(r rune) (uint8, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint8(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return uint8(r-'A') + 10, true
	default:
		return 0, false
	}
}
