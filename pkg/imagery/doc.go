// Package imagery is a convenience facade over the disintegration/imaging
// library. Heterogeneous geometry arguments (exact pixels, single dimension
// with aspect inference, scale ratios, symbolic anchors) are expressed as
// tagged variants (Size, Position) and canonicalised exactly once at the
// service boundary, so operations like Resize, Crop and Thumbnail never
// re-inspect argument shapes. Save creates missing destination directories
// before encoding.
package imagery
