package imagery

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Option customises the service configuration.
type Option func(*Service)

// WithThumbnailMode overrides the default thumbnail policy.
func WithThumbnailMode(mode ThumbnailMode) Option {
	return func(s *Service) {
		s.thumbnailMode = mode
	}
}

// WithJPEGQuality sets the default quality (1-100) used when saving JPEGs.
func WithJPEGQuality(quality int) Option {
	return func(s *Service) {
		s.jpegQuality = quality
	}
}

// WithBackground sets the fill colour used by Create when no colour is given.
func WithBackground(c color.Color) Option {
	return func(s *Service) {
		s.background = c
	}
}

// WithDirPermissions sets the mode bits for directories created by Save.
func WithDirPermissions(perm os.FileMode) Option {
	return func(s *Service) {
		s.dirPerm = perm
	}
}

// WithResampleFilter overrides the resampling kernel used by scaling
// operations. Defaults to Lanczos.
func WithResampleFilter(filter imaging.ResampleFilter) Option {
	return func(s *Service) {
		s.filter = filter
	}
}

// Service is the image-manipulation facade. All geometry arguments arrive as
// tagged variants (Size, Position) and are resolved exactly once per call
// before delegating to the underlying library. The zero value is not usable;
// construct through New.
type Service struct {
	thumbnailMode ThumbnailMode
	jpegQuality   int
	background    color.Color
	dirPerm       os.FileMode
	filter        imaging.ResampleFilter
}

// New constructs a Service applying any provided options on top of the
// defaults (inset thumbnails, JPEG quality 85, transparent background).
func New(options ...Option) *Service {
	s := &Service{
		thumbnailMode: ThumbnailInset,
		jpegQuality:   85,
		background:    color.NRGBA{},
		dirPerm:       0o755,
		filter:        imaging.Lanczos,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Open loads and decodes the image at path, honouring EXIF orientation.
func (s *Service) Open(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imagery: open %s: %w", path, err)
	}
	return img, nil
}

// Decode reads an image from r, sniffing the format from the payload.
func (s *Service) Decode(ctx context.Context, r io.Reader) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imagery: decode: %w", err)
	}
	return img, nil
}

// Create returns a blank canvas of the given box filled with fill. A nil
// fill uses the configured background colour.
func (s *Service) Create(ctx context.Context, box Box, fill color.Color) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := NewBox(box.Width, box.Height); err != nil {
		return nil, err
	}
	if fill == nil {
		fill = s.background
	}
	return imaging.New(box.Width, box.Height, fill), nil
}

// Resize scales img to the resolved target dimensions. Aspect ratio is
// preserved only when the Size variant implies it (single dimension or
// ratio); exact sizes may distort.
func (s *Service) Resize(ctx context.Context, img image.Image, size Size) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := size.Resolve(BoxFromImage(img))
	if err != nil {
		return nil, fmt.Errorf("imagery: resize: %w", err)
	}
	return imaging.Resize(img, target.Width, target.Height, s.filter), nil
}

// Crop extracts a region of the resolved size positioned by pos. A ratio
// Size scales the source box first, so Crop(img, Anchored(AnchorCenter),
// Ratio(0.5)) takes the centred half-size region. The crop rectangle is
// clamped to the source bounds.
func (s *Service) Crop(ctx context.Context, img image.Image, pos Position, size Size) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := BoxFromImage(img)
	target, err := size.Resolve(src)
	if err != nil {
		return nil, fmt.Errorf("imagery: crop: %w", err)
	}

	origin, err := pos.Resolve(src, target)
	if err != nil {
		return nil, fmt.Errorf("imagery: crop: %w", err)
	}
	if !origin.In(src) {
		return nil, fmt.Errorf("imagery: crop origin %s outside source %s", origin, src)
	}

	rect := image.Rect(origin.X, origin.Y, origin.X+target.Width, origin.Y+target.Height)
	rect = rect.Intersect(src.Rect())
	if rect.Empty() {
		return nil, fmt.Errorf("imagery: crop region %s at %s is empty", target, origin)
	}
	return imaging.Crop(img, rect), nil
}

// Thumbnail produces an aspect-preserving derivative. Mode selects the
// policy; an empty mode uses the service default.
func (s *Service) Thumbnail(ctx context.Context, img image.Image, size Size, mode ThumbnailMode) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := size.Resolve(BoxFromImage(img))
	if err != nil {
		return nil, fmt.Errorf("imagery: thumbnail: %w", err)
	}
	if mode == "" {
		mode = s.thumbnailMode
	}

	switch mode {
	case ThumbnailInset:
		return imaging.Fit(img, target.Width, target.Height, s.filter), nil
	case ThumbnailOutbound:
		return imaging.Fill(img, target.Width, target.Height, imaging.Center, s.filter), nil
	default:
		return nil, fmt.Errorf("imagery: unknown thumbnail mode %q", mode)
	}
}

// Paste composites overlay onto dst at the resolved position. Opacity runs
// from 0 (invisible) to 1 (opaque); use 1 for a plain paste and lower values
// for watermarking.
func (s *Service) Paste(ctx context.Context, dst, overlay image.Image, pos Position, opacity float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opacity < 0 || opacity > 1 {
		return nil, fmt.Errorf("imagery: opacity must be in [0,1], got %g", opacity)
	}

	outer := BoxFromImage(dst)
	inner := BoxFromImage(overlay)
	origin, err := pos.Resolve(outer, inner)
	if err != nil {
		return nil, fmt.Errorf("imagery: paste: %w", err)
	}

	at := image.Pt(origin.X, origin.Y)
	if opacity == 1 {
		return imaging.Paste(dst, overlay, at), nil
	}
	return imaging.Overlay(dst, overlay, at, opacity), nil
}

// Grayscale converts img to its grayscale equivalent.
func (s *Service) Grayscale(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return imaging.Grayscale(img), nil
}

// Blur applies a gaussian blur. Sigma must be positive.
func (s *Service) Blur(ctx context.Context, img image.Image, sigma float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("imagery: blur sigma must be positive, got %g", sigma)
	}
	return imaging.Blur(img, sigma), nil
}

// Sharpen applies an unsharp mask. Sigma must be positive.
func (s *Service) Sharpen(ctx context.Context, img image.Image, sigma float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("imagery: sharpen sigma must be positive, got %g", sigma)
	}
	return imaging.Sharpen(img, sigma), nil
}

// SaveOptions customise a single Save call.
type SaveOptions struct {
	// Format overrides the encoding inferred from the path extension
	// ("jpeg", "png", "gif", "tiff", "bmp").
	Format string
	// JPEGQuality overrides the service default for this call.
	JPEGQuality int
}

// Save encodes img to path, creating any missing parent directories first.
func (s *Service) Save(ctx context.Context, img image.Image, path string, opts SaveOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("imagery: save path is empty")
	}

	format, err := s.resolveFormat(path, opts.Format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, s.dirPerm); err != nil {
			return fmt.Errorf("imagery: create directory %s: %w", dir, err)
		}
	}

	quality := opts.JPEGQuality
	if quality <= 0 {
		quality = s.jpegQuality
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imagery: create %s: %w", path, err)
	}
	defer file.Close()

	if err := imaging.Encode(file, img, format, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("imagery: encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("imagery: close %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w in the named format ("jpeg", "png", ...).
func (s *Service) Encode(ctx context.Context, w io.Writer, img image.Image, format string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	parsed, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("imagery: format %q: %w", format, err)
	}
	if err := imaging.Encode(w, img, parsed, imaging.JPEGQuality(s.jpegQuality)); err != nil {
		return fmt.Errorf("imagery: encode: %w", err)
	}
	return nil
}

func (s *Service) resolveFormat(path, override string) (imaging.Format, error) {
	if override != "" {
		format, err := imaging.FormatFromExtension(override)
		if err != nil {
			return 0, fmt.Errorf("imagery: format %q: %w", override, err)
		}
		return format, nil
	}
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("imagery: infer format for %s: %w", path, err)
	}
	return format, nil
}
