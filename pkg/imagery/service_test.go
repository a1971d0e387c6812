package imagery_test

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-contentkit/pkg/imagery"
)

func newService(t *testing.T, options ...imagery.Option) *imagery.Service {
	t.Helper()
	return imagery.New(options...)
}

func mustCreate(t *testing.T, svc *imagery.Service, w, h int) image.Image {
	t.Helper()
	img, err := svc.Create(context.Background(), imagery.MustBox(w, h), imagery.RGB(10, 20, 30))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return img
}

func assertBounds(t *testing.T, img image.Image, w, h int) {
	t.Helper()
	got := imagery.BoxFromImage(img)
	if got.Width != w || got.Height != h {
		t.Fatalf("image bounds = %s, want %dx%d", got, w, h)
	}
}

func TestCreateValidatesBox(t *testing.T) {
	svc := newService(t)
	if _, err := svc.Create(context.Background(), imagery.Box{}, nil); err == nil {
		t.Fatal("Create with zero box expected error, got none")
	}
}

func TestResizeVariants(t *testing.T) {
	svc := newService(t)
	src := mustCreate(t, svc, 640, 480)

	cases := []struct {
		name string
		size imagery.Size
		w, h int
	}{
		{name: "exact", size: imagery.Exact(100, 100), w: 100, h: 100},
		{name: "width preserves aspect", size: imagery.Width(320), w: 320, h: 240},
		{name: "height preserves aspect", size: imagery.Height(120), w: 160, h: 120},
		{name: "ratio", size: imagery.Ratio(0.25), w: 160, h: 120},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := svc.Resize(context.Background(), src, tc.size)
			if err != nil {
				t.Fatalf("Resize returned error: %v", err)
			}
			assertBounds(t, out, tc.w, tc.h)
		})
	}
}

func TestResizeUnspecifiedSizeFails(t *testing.T) {
	svc := newService(t)
	src := mustCreate(t, svc, 10, 10)
	if _, err := svc.Resize(context.Background(), src, imagery.Size{}); err == nil {
		t.Fatal("Resize with zero size expected error, got none")
	}
}

func TestCrop(t *testing.T) {
	svc := newService(t)
	src := mustCreate(t, svc, 100, 100)

	t.Run("explicit origin", func(t *testing.T) {
		out, err := svc.Crop(context.Background(), src, imagery.AtXY(10, 20), imagery.Exact(30, 40))
		if err != nil {
			t.Fatalf("Crop returned error: %v", err)
		}
		assertBounds(t, out, 30, 40)
	})

	t.Run("anchored ratio", func(t *testing.T) {
		out, err := svc.Crop(context.Background(), src, imagery.Anchored(imagery.AnchorCenter), imagery.Ratio(0.5))
		if err != nil {
			t.Fatalf("Crop returned error: %v", err)
		}
		assertBounds(t, out, 50, 50)
	})

	t.Run("clamped to bounds", func(t *testing.T) {
		out, err := svc.Crop(context.Background(), src, imagery.AtXY(80, 80), imagery.Exact(50, 50))
		if err != nil {
			t.Fatalf("Crop returned error: %v", err)
		}
		assertBounds(t, out, 20, 20)
	})

	t.Run("origin outside source", func(t *testing.T) {
		if _, err := svc.Crop(context.Background(), src, imagery.AtXY(200, 200), imagery.Exact(10, 10)); err == nil {
			t.Fatal("Crop outside source expected error, got none")
		}
	})

	t.Run("unspecified position", func(t *testing.T) {
		if _, err := svc.Crop(context.Background(), src, imagery.Position{}, imagery.Exact(10, 10)); err == nil {
			t.Fatal("Crop with zero position expected error, got none")
		}
	})
}

func TestThumbnailModes(t *testing.T) {
	svc := newService(t)
	src := mustCreate(t, svc, 400, 200)

	t.Run("inset keeps aspect", func(t *testing.T) {
		out, err := svc.Thumbnail(context.Background(), src, imagery.Exact(100, 100), imagery.ThumbnailInset)
		if err != nil {
			t.Fatalf("Thumbnail returned error: %v", err)
		}
		assertBounds(t, out, 100, 50)
	})

	t.Run("outbound fills exactly", func(t *testing.T) {
		out, err := svc.Thumbnail(context.Background(), src, imagery.Exact(100, 100), imagery.ThumbnailOutbound)
		if err != nil {
			t.Fatalf("Thumbnail returned error: %v", err)
		}
		assertBounds(t, out, 100, 100)
	})

	t.Run("empty mode uses service default", func(t *testing.T) {
		out, err := svc.Thumbnail(context.Background(), src, imagery.Exact(100, 100), "")
		if err != nil {
			t.Fatalf("Thumbnail returned error: %v", err)
		}
		assertBounds(t, out, 100, 50)
	})

	t.Run("unknown mode", func(t *testing.T) {
		if _, err := svc.Thumbnail(context.Background(), src, imagery.Exact(100, 100), "stretch"); err == nil {
			t.Fatal("Thumbnail with unknown mode expected error, got none")
		}
	})
}

func TestPasteAnchoredWatermark(t *testing.T) {
	svc := newService(t)
	dst := mustCreate(t, svc, 100, 100)
	mark := mustCreate(t, svc, 20, 10)

	out, err := svc.Paste(context.Background(), dst, mark, imagery.Anchored(imagery.AnchorBottomRight), 0.5)
	if err != nil {
		t.Fatalf("Paste returned error: %v", err)
	}
	assertBounds(t, out, 100, 100)

	if _, err := svc.Paste(context.Background(), dst, mark, imagery.AtXY(0, 0), 1.5); err == nil {
		t.Fatal("Paste with opacity > 1 expected error, got none")
	}
}

func TestSaveCreatesDirectories(t *testing.T) {
	svc := newService(t)
	img := mustCreate(t, svc, 8, 8)

	path := filepath.Join(t.TempDir(), "derived", "thumbs", "out.png")
	if err := svc.Save(context.Background(), img, path, imagery.SaveOptions{}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("saved file is empty")
	}
}

func TestSaveFormatOverride(t *testing.T) {
	svc := newService(t)
	img := mustCreate(t, svc, 8, 8)

	path := filepath.Join(t.TempDir(), "out.bin")
	if err := svc.Save(context.Background(), img, path, imagery.SaveOptions{Format: "png"}); err != nil {
		t.Fatalf("Save with format override returned error: %v", err)
	}

	if err := svc.Save(context.Background(), img, filepath.Join(t.TempDir(), "noext"), imagery.SaveOptions{}); err == nil {
		t.Fatal("Save without inferable format expected error, got none")
	}
}

func TestOpenRoundTrip(t *testing.T) {
	svc := newService(t)
	img := mustCreate(t, svc, 16, 12)

	path := filepath.Join(t.TempDir(), "roundtrip.png")
	if err := svc.Save(context.Background(), img, path, imagery.SaveOptions{}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := svc.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	assertBounds(t, loaded, 16, 12)
}

func TestContextCancellation(t *testing.T) {
	svc := newService(t)
	img := mustCreate(t, svc, 8, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Resize(ctx, img, imagery.Width(4)); err == nil {
		t.Fatal("Resize with cancelled context expected error, got none")
	}
	if err := svc.Save(ctx, img, filepath.Join(t.TempDir(), "x.png"), imagery.SaveOptions{}); err == nil {
		t.Fatal("Save with cancelled context expected error, got none")
	}
}
