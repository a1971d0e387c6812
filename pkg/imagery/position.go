package imagery

import (
	"errors"
	"fmt"
)

// Position is the placement analogue of Size: either explicit coordinates or
// a symbolic anchor, resolved once against the outer and inner boxes.
type Position struct {
	kind   positionKind
	point  Point
	anchor Anchor
}

type positionKind uint8

const (
	positionUnspecified positionKind = iota
	positionPoint
	positionAnchor
)

// ErrUnspecifiedPosition is returned when a zero-value Position is resolved.
var ErrUnspecifiedPosition = errors.New("imagery: position is unspecified")

// At places content at explicit top-left coordinates.
func At(point Point) Position {
	return Position{kind: positionPoint, point: point}
}

// AtXY is shorthand for At with raw coordinates.
func AtXY(x, y int) Position {
	return Position{kind: positionPoint, point: Point{X: x, Y: y}}
}

// Anchored places content symbolically relative to the outer box.
func Anchored(anchor Anchor) Position {
	return Position{kind: positionAnchor, anchor: anchor}
}

// IsZero reports whether the position carries no request.
func (p Position) IsZero() bool {
	return p.kind == positionUnspecified
}

// Resolve produces the top-left point at which a box of size inner lands
// inside outer.
func (p Position) Resolve(outer, inner Box) (Point, error) {
	switch p.kind {
	case positionPoint:
		if p.point.X < 0 || p.point.Y < 0 {
			return Point{}, fmt.Errorf("imagery: position %s has negative coordinates", p.point)
		}
		return p.point, nil
	case positionAnchor:
		return p.anchor.Position(outer, inner), nil
	default:
		return Point{}, ErrUnspecifiedPosition
	}
}
