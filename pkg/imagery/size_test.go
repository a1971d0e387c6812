package imagery_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contentkit/pkg/imagery"
)

func TestSizeResolve(t *testing.T) {
	src := imagery.MustBox(640, 480)

	cases := []struct {
		name string
		size imagery.Size
		want imagery.Box
	}{
		{name: "exact", size: imagery.Exact(100, 50), want: imagery.MustBox(100, 50)},
		{name: "width infers height", size: imagery.Width(320), want: imagery.MustBox(320, 240)},
		{name: "height infers width", size: imagery.Height(240), want: imagery.MustBox(320, 240)},
		{name: "ratio scales both", size: imagery.Ratio(0.5), want: imagery.MustBox(320, 240)},
		{name: "ratio enlarges", size: imagery.Ratio(2), want: imagery.MustBox(1280, 960)},
		{name: "exact box", size: imagery.ExactBox(imagery.MustBox(10, 20)), want: imagery.MustBox(10, 20)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.size.Resolve(src)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("resolved box mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSizeResolveRounding(t *testing.T) {
	// 99 wide source halved rounds to the nearest pixel rather than
	// truncating.
	got, err := imagery.Ratio(0.5).Resolve(imagery.MustBox(99, 33))
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := imagery.MustBox(50, 17)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rounded box mismatch (-want +got):\n%s", diff)
	}
}

func TestSizeResolveErrors(t *testing.T) {
	src := imagery.MustBox(640, 480)

	cases := []struct {
		name string
		size imagery.Size
	}{
		{name: "zero value", size: imagery.Size{}},
		{name: "zero width", size: imagery.Width(0)},
		{name: "negative height", size: imagery.Height(-10)},
		{name: "zero ratio", size: imagery.Ratio(0)},
		{name: "negative ratio", size: imagery.Ratio(-1)},
		{name: "zero exact", size: imagery.Exact(0, 100)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.size.Resolve(src); err == nil {
				t.Fatalf("Resolve(%v) expected error, got none", tc.size)
			}
		})
	}

	if _, err := (imagery.Size{}).Resolve(src); !errors.Is(err, imagery.ErrUnspecifiedSize) {
		t.Fatalf("zero size should resolve to ErrUnspecifiedSize, got %v", err)
	}
}

func TestParseSize(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want imagery.Size
	}{
		{name: "exact pair", raw: "640x480", want: imagery.Exact(640, 480)},
		{name: "uppercase separator", raw: "640X480", want: imagery.Exact(640, 480)},
		{name: "bare width", raw: "640", want: imagery.Width(640)},
		{name: "width with trailing x", raw: "640x", want: imagery.Width(640)},
		{name: "height only", raw: "x480", want: imagery.Height(480)},
		{name: "ratio", raw: "0.5", want: imagery.Ratio(0.5)},
		{name: "ratio above one", raw: "1.5", want: imagery.Ratio(1.5)},
		{name: "padded", raw: "  320x240 ", want: imagery.Exact(320, 240)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := imagery.ParseSize(tc.raw)
			if err != nil {
				t.Fatalf("ParseSize(%q) returned error: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("ParseSize(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseSizeErrors(t *testing.T) {
	for _, raw := range []string{"", "x", "axb", "-10", "0", "0x0", "-1.5", "10x-5"} {
		if _, err := imagery.ParseSize(raw); err == nil {
			t.Fatalf("ParseSize(%q) expected error, got none", raw)
		}
	}
}

func TestParseThumbnailMode(t *testing.T) {
	cases := []struct {
		raw  string
		want imagery.ThumbnailMode
	}{
		{raw: "", want: imagery.ThumbnailInset},
		{raw: "inset", want: imagery.ThumbnailInset},
		{raw: "fit", want: imagery.ThumbnailInset},
		{raw: "OUTBOUND", want: imagery.ThumbnailOutbound},
		{raw: "cover", want: imagery.ThumbnailOutbound},
	}
	for _, tc := range cases {
		got, err := imagery.ParseThumbnailMode(tc.raw)
		if err != nil {
			t.Fatalf("ParseThumbnailMode(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseThumbnailMode(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}

	if _, err := imagery.ParseThumbnailMode("stretch"); err == nil {
		t.Fatal("ParseThumbnailMode(stretch) expected error, got none")
	}
}
