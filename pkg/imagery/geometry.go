package imagery

import (
	"fmt"
	"image"
)

// Box describes pixel dimensions for an image or canvas. Boxes are value
// types; constructors validate once so downstream code never re-checks.
type Box struct {
	Width  int
	Height int
}

// NewBox validates the dimensions and returns a Box. Both dimensions must be
// positive; a zero-area box is never a valid canvas or crop target.
func NewBox(width, height int) (Box, error) {
	if width <= 0 || height <= 0 {
		return Box{}, fmt.Errorf("imagery: box dimensions must be positive, got %dx%d", width, height)
	}
	return Box{Width: width, Height: height}, nil
}

// MustBox panics when construction fails. Useful for fixtures and tests.
func MustBox(width, height int) Box {
	box, err := NewBox(width, height)
	if err != nil {
		panic(err)
	}
	return box
}

// BoxFromImage derives the bounding box of a decoded image.
func BoxFromImage(img image.Image) Box {
	bounds := img.Bounds()
	return Box{Width: bounds.Dx(), Height: bounds.Dy()}
}

// AspectRatio returns width divided by height.
func (b Box) AspectRatio() float64 {
	if b.Height == 0 {
		return 0
	}
	return float64(b.Width) / float64(b.Height)
}

// Scale multiplies both dimensions by ratio, rounding to the nearest pixel
// and never collapsing a positive box below 1x1.
func (b Box) Scale(ratio float64) Box {
	return Box{
		Width:  scaleDim(b.Width, ratio),
		Height: scaleDim(b.Height, ratio),
	}
}

// Contains reports whether other fits entirely inside b.
func (b Box) Contains(other Box) bool {
	return other.Width <= b.Width && other.Height <= b.Height
}

// Fit computes the largest box with b's aspect ratio that fits inside bounds.
// This is the inset thumbnail computation: the result never exceeds bounds in
// either dimension.
func (b Box) Fit(bounds Box) Box {
	if b.Width == 0 || b.Height == 0 {
		return Box{}
	}
	if bounds.Contains(b) {
		return b
	}

	widthRatio := float64(bounds.Width) / float64(b.Width)
	heightRatio := float64(bounds.Height) / float64(b.Height)
	ratio := widthRatio
	if heightRatio < ratio {
		ratio = heightRatio
	}
	return b.Scale(ratio)
}

// Rect converts the box to a zero-origin image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// String renders the conventional WxH form.
func (b Box) String() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

func scaleDim(value int, ratio float64) int {
	scaled := int(float64(value)*ratio + 0.5)
	if scaled < 1 && value > 0 && ratio > 0 {
		return 1
	}
	return scaled
}

// Point is an (x, y) pixel coordinate. Origin is the top-left corner, X
// grows rightward and Y downward.
type Point struct {
	X int
	Y int
}

// NewPoint validates that both coordinates are non-negative.
func NewPoint(x, y int) (Point, error) {
	if x < 0 || y < 0 {
		return Point{}, fmt.Errorf("imagery: point coordinates must be non-negative, got (%d,%d)", x, y)
	}
	return Point{X: x, Y: y}, nil
}

// In reports whether the point lies inside the box.
func (p Point) In(box Box) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < box.Width && p.Y < box.Height
}

// Add returns the component-wise sum.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// String renders the conventional (x,y) form.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Anchor names a symbolic placement inside a box, used when callers position
// an overlay or crop without explicit coordinates.
type Anchor string

const (
	AnchorCenter      Anchor = "center"
	AnchorTopLeft     Anchor = "top-left"
	AnchorTop         Anchor = "top"
	AnchorTopRight    Anchor = "top-right"
	AnchorLeft        Anchor = "left"
	AnchorRight       Anchor = "right"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottom      Anchor = "bottom"
	AnchorBottomRight Anchor = "bottom-right"
)

// ParseAnchor normalises the loose spellings accepted in configuration
// ("topleft", "top_left", "TopLeft") into an Anchor constant.
func ParseAnchor(raw string) (Anchor, error) {
	key := normalizeAnchorKey(raw)
	anchor, ok := anchorAliases[key]
	if !ok {
		return "", fmt.Errorf("imagery: unknown anchor %q", raw)
	}
	return anchor, nil
}

// Position resolves the anchor into the top-left point at which a box of
// size inner should be placed within outer. Coordinates are clamped at zero
// when inner exceeds outer.
func (a Anchor) Position(outer, inner Box) Point {
	dx := outer.Width - inner.Width
	dy := outer.Height - inner.Height
	if dx < 0 {
		dx = 0
	}
	if dy < 0 {
		dy = 0
	}

	var x, y int
	switch a {
	case AnchorTopLeft, AnchorLeft, AnchorBottomLeft:
		x = 0
	case AnchorTop, AnchorCenter, AnchorBottom:
		x = dx / 2
	case AnchorTopRight, AnchorRight, AnchorBottomRight:
		x = dx
	default:
		x = dx / 2
	}
	switch a {
	case AnchorTopLeft, AnchorTop, AnchorTopRight:
		y = 0
	case AnchorLeft, AnchorCenter, AnchorRight:
		y = dy / 2
	case AnchorBottomLeft, AnchorBottom, AnchorBottomRight:
		y = dy
	default:
		y = dy / 2
	}
	return Point{X: x, Y: y}
}

var anchorAliases = map[string]Anchor{
	"center":      AnchorCenter,
	"centre":      AnchorCenter,
	"middle":      AnchorCenter,
	"topleft":     AnchorTopLeft,
	"top":         AnchorTop,
	"topright":    AnchorTopRight,
	"left":        AnchorLeft,
	"right":       AnchorRight,
	"bottomleft":  AnchorBottomLeft,
	"bottom":      AnchorBottom,
	"bottomright": AnchorBottomRight,
}

func normalizeAnchorKey(raw string) string {
	out := make([]rune, 0, len(raw))
	for _, r := range raw {
		switch r {
		case '-', '_', ' ':
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
