package imagery

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Size is the tagged variant behind every operation that accepts target
// dimensions. Callers construct it through Exact/Width/Height/Ratio (or
// ParseSize for the loose string forms) and the variant is unpacked exactly
// once, in Resolve, against the source box. This replaces the type-sniffing
// branches a dynamically typed facade would repeat at every call site.
type Size struct {
	kind   sizeKind
	width  int
	height int
	ratio  float64
}

type sizeKind uint8

const (
	sizeUnspecified sizeKind = iota
	sizeExact
	sizeWidth
	sizeHeight
	sizeRatio
)

// ErrUnspecifiedSize is returned when a zero-value Size reaches Resolve.
var ErrUnspecifiedSize = errors.New("imagery: size is unspecified")

// Exact requests precise pixel dimensions.
func Exact(width, height int) Size {
	return Size{kind: sizeExact, width: width, height: height}
}

// ExactBox requests the dimensions of an existing box.
func ExactBox(box Box) Size {
	return Exact(box.Width, box.Height)
}

// Width requests a target width with the height inferred from the source
// aspect ratio.
func Width(width int) Size {
	return Size{kind: sizeWidth, width: width}
}

// Height requests a target height with the width inferred from the source
// aspect ratio.
func Height(height int) Size {
	return Size{kind: sizeHeight, height: height}
}

// Ratio requests scaling the source by a factor. Values above 1 enlarge.
func Ratio(ratio float64) Size {
	return Size{kind: sizeRatio, ratio: ratio}
}

// IsZero reports whether the size carries no request.
func (s Size) IsZero() bool {
	return s.kind == sizeUnspecified
}

// Resolve canonicalises the variant against the source box. It is the only
// place size disambiguation happens; every branch validates its inputs so
// callers receive either a positive box or an error.
func (s Size) Resolve(src Box) (Box, error) {
	switch s.kind {
	case sizeExact:
		return NewBox(s.width, s.height)
	case sizeWidth:
		if s.width <= 0 {
			return Box{}, fmt.Errorf("imagery: width must be positive, got %d", s.width)
		}
		if src.Width <= 0 || src.Height <= 0 {
			return Box{}, fmt.Errorf("imagery: cannot infer height from source %s", src)
		}
		height := scaleDim(src.Height, float64(s.width)/float64(src.Width))
		return NewBox(s.width, height)
	case sizeHeight:
		if s.height <= 0 {
			return Box{}, fmt.Errorf("imagery: height must be positive, got %d", s.height)
		}
		if src.Width <= 0 || src.Height <= 0 {
			return Box{}, fmt.Errorf("imagery: cannot infer width from source %s", src)
		}
		width := scaleDim(src.Width, float64(s.height)/float64(src.Height))
		return NewBox(width, s.height)
	case sizeRatio:
		if s.ratio <= 0 {
			return Box{}, fmt.Errorf("imagery: ratio must be positive, got %g", s.ratio)
		}
		if src.Width <= 0 || src.Height <= 0 {
			return Box{}, fmt.Errorf("imagery: cannot scale source %s", src)
		}
		scaled := src.Scale(s.ratio)
		return NewBox(scaled.Width, scaled.Height)
	default:
		return Box{}, ErrUnspecifiedSize
	}
}

// String renders the request for error messages and logs.
func (s Size) String() string {
	switch s.kind {
	case sizeExact:
		return fmt.Sprintf("%dx%d", s.width, s.height)
	case sizeWidth:
		return fmt.Sprintf("%dx", s.width)
	case sizeHeight:
		return fmt.Sprintf("x%d", s.height)
	case sizeRatio:
		return strconv.FormatFloat(s.ratio, 'g', -1, 64)
	default:
		return "unspecified"
	}
}

// ParseSize accepts the loose textual forms used in configuration and CLI
// flags:
//
//	"640x480"  exact pixels
//	"640" or "640x"  width with inferred height
//	"x480"  height with inferred width
//	"0.5"  scale ratio (any value containing a decimal point)
func ParseSize(raw string) (Size, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Size{}, errors.New("imagery: size string is empty")
	}

	if strings.ContainsAny(trimmed, "xX") {
		return parseDimensionPair(trimmed)
	}

	if strings.Contains(trimmed, ".") {
		ratio, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Size{}, fmt.Errorf("imagery: parse ratio %q: %w", raw, err)
		}
		if ratio <= 0 {
			return Size{}, fmt.Errorf("imagery: ratio must be positive, got %q", raw)
		}
		return Ratio(ratio), nil
	}

	width, err := strconv.Atoi(trimmed)
	if err != nil {
		return Size{}, fmt.Errorf("imagery: parse size %q: %w", raw, err)
	}
	if width <= 0 {
		return Size{}, fmt.Errorf("imagery: width must be positive, got %q", raw)
	}
	return Width(width), nil
}

func parseDimensionPair(raw string) (Size, error) {
	lower := strings.ToLower(raw)
	parts := strings.SplitN(lower, "x", 2)
	if len(parts) != 2 {
		return Size{}, fmt.Errorf("imagery: invalid size %q", raw)
	}

	left := strings.TrimSpace(parts[0])
	right := strings.TrimSpace(parts[1])

	switch {
	case left != "" && right != "":
		width, err := strconv.Atoi(left)
		if err != nil {
			return Size{}, fmt.Errorf("imagery: parse width in %q: %w", raw, err)
		}
		height, err := strconv.Atoi(right)
		if err != nil {
			return Size{}, fmt.Errorf("imagery: parse height in %q: %w", raw, err)
		}
		if width <= 0 || height <= 0 {
			return Size{}, fmt.Errorf("imagery: dimensions must be positive in %q", raw)
		}
		return Exact(width, height), nil
	case left != "":
		width, err := strconv.Atoi(left)
		if err != nil {
			return Size{}, fmt.Errorf("imagery: parse width in %q: %w", raw, err)
		}
		if width <= 0 {
			return Size{}, fmt.Errorf("imagery: width must be positive in %q", raw)
		}
		return Width(width), nil
	case right != "":
		height, err := strconv.Atoi(right)
		if err != nil {
			return Size{}, fmt.Errorf("imagery: parse height in %q: %w", raw, err)
		}
		if height <= 0 {
			return Size{}, fmt.Errorf("imagery: height must be positive in %q", raw)
		}
		return Height(height), nil
	default:
		return Size{}, fmt.Errorf("imagery: invalid size %q", raw)
	}
}

// ThumbnailMode selects the aspect-ratio policy for derivative images.
type ThumbnailMode string

const (
	// ThumbnailInset scales the source to fit entirely inside the target
	// bounds; the result may be smaller than the target in one dimension.
	ThumbnailInset ThumbnailMode = "inset"
	// ThumbnailOutbound scales the source to cover the target bounds and
	// crops the overflow around the centre, producing exact dimensions.
	ThumbnailOutbound ThumbnailMode = "outbound"
)

// ParseThumbnailMode normalises mode spellings from configuration.
func ParseThumbnailMode(raw string) (ThumbnailMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "inset", "fit":
		return ThumbnailInset, nil
	case "outbound", "fill", "cover":
		return ThumbnailOutbound, nil
	default:
		return "", fmt.Errorf("imagery: unknown thumbnail mode %q", raw)
	}
}
