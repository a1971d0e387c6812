package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"strings"

	contentkit "github.com/goliatone/go-contentkit"
	"github.com/goliatone/go-contentkit/internal/prompt"
	"github.com/goliatone/go-contentkit/pkg/filters"
	"github.com/goliatone/go-contentkit/pkg/forms"
	"github.com/goliatone/go-contentkit/pkg/imagery"
	"github.com/goliatone/go-contentkit/pkg/markup"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(ctx, os.Args[2:])
	case "image":
		err = runImage(ctx, os.Args[2:])
	case "forms":
		err = runForms(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("contentkit-cli: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: contentkit-cli <render|image|forms> [flags]")
}

func runRender(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	input := fs.String("input", "", "source file (stdin if empty)")
	output := fs.String("output", "", "output file (stdout if empty)")
	renderer := fs.String("renderer", "", "markup renderer (default markdown)")
	baseURL := fs.String("base-url", "", "prefix for relative links")
	hardBreaks := fs.Bool("hard-breaks", false, "treat every newline as a line break")
	mentions := fs.Bool("mentions", false, "link @name tokens to profiles")
	mentionURL := fs.String("mention-url", "/profiles/{name}", "profile URL template for mentions")
	fs.Parse(args)

	src, err := readInput(*input)
	if err != nil {
		return err
	}

	var options []contentkit.Option
	if *mentions {
		options = append(options, contentkit.WithFilters(
			filters.NewMention(filters.WithURLTemplate(*mentionURL)),
		))
	}

	pipeline := contentkit.New(options...)
	out, err := pipeline.Process(ctx, contentkit.Request{
		Source:   src,
		Renderer: *renderer,
		Options: markup.RenderOptions{
			HardLineBreaks: *hardBreaks,
			BaseURL:        *baseURL,
		},
	})
	if err != nil {
		return err
	}
	return writeOutput(*output, out)
}

func runImage(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("image", flag.ExitOnError)
	input := fs.String("input", "", "source image path")
	output := fs.String("output", "", "destination image path")
	op := fs.String("op", "thumbnail", "operation: resize, crop, thumbnail, watermark, grayscale")
	size := fs.String("size", "", "target size: WxH, W, xH, or a ratio like 0.5")
	anchorName := fs.String("anchor", "center", "placement anchor for crop/watermark")
	mode := fs.String("mode", "", "thumbnail mode: inset or outbound")
	watermark := fs.String("watermark", "", "overlay image path for the watermark op")
	opacity := fs.Float64("opacity", 0.4, "watermark opacity between 0 and 1")
	quality := fs.Int("quality", 0, "JPEG quality override (1-100)")
	interactive := fs.Bool("interactive", false, "prompt for missing parameters")
	fs.Parse(args)

	if *interactive {
		if err := promptImageArgs(ctx, input, output, op, size); err != nil {
			return err
		}
	}
	if *input == "" || *output == "" {
		return fmt.Errorf("image: -input and -output are required")
	}

	svc := imagery.New()
	img, err := svc.Open(ctx, *input)
	if err != nil {
		return err
	}

	result, err := applyImageOp(ctx, svc, img, imageOpArgs{
		op:        *op,
		size:      *size,
		anchor:    *anchorName,
		mode:      *mode,
		watermark: *watermark,
		opacity:   *opacity,
	})
	if err != nil {
		return err
	}

	if err := svc.Save(ctx, result, *output, imagery.SaveOptions{JPEGQuality: *quality}); err != nil {
		return err
	}
	fmt.Printf("Image written to %s\n", *output)
	return nil
}

type imageOpArgs struct {
	op        string
	size      string
	anchor    string
	mode      string
	watermark string
	opacity   float64
}

func applyImageOp(ctx context.Context, svc *imagery.Service, img image.Image, args imageOpArgs) (image.Image, error) {
	needsSize := args.op == "resize" || args.op == "crop" || args.op == "thumbnail"

	var size imagery.Size
	if needsSize {
		if args.size == "" {
			return nil, fmt.Errorf("image: -size is required for %s", args.op)
		}
		parsed, err := imagery.ParseSize(args.size)
		if err != nil {
			return nil, err
		}
		size = parsed
	}

	switch args.op {
	case "resize":
		return svc.Resize(ctx, img, size)
	case "crop":
		anchor, err := imagery.ParseAnchor(args.anchor)
		if err != nil {
			return nil, err
		}
		return svc.Crop(ctx, img, imagery.Anchored(anchor), size)
	case "thumbnail":
		mode, err := imagery.ParseThumbnailMode(args.mode)
		if err != nil {
			return nil, err
		}
		return svc.Thumbnail(ctx, img, size, mode)
	case "watermark":
		if args.watermark == "" {
			return nil, fmt.Errorf("image: -watermark is required for the watermark op")
		}
		overlay, err := svc.Open(ctx, args.watermark)
		if err != nil {
			return nil, err
		}
		anchor, err := imagery.ParseAnchor(args.anchor)
		if err != nil {
			return nil, err
		}
		return svc.Paste(ctx, img, overlay, imagery.Anchored(anchor), args.opacity)
	case "grayscale":
		return svc.Grayscale(ctx, img)
	default:
		return nil, fmt.Errorf("image: unknown operation %q", args.op)
	}
}

func promptImageArgs(ctx context.Context, input, output, op, size *string) error {
	driver := prompt.New()

	if *input == "" {
		value, err := driver.Input(ctx, prompt.InputConfig{
			Message:   "Source image path",
			Validator: requireValue,
		})
		if err != nil {
			return err
		}
		*input = value
	}

	operations := []string{"resize", "crop", "thumbnail", "watermark", "grayscale"}
	selected, err := driver.Select(ctx, prompt.SelectConfig{
		Message:      "Operation",
		Options:      operations,
		DefaultIndex: indexOf(operations, *op),
	})
	if err != nil {
		return err
	}
	if selected >= 0 {
		*op = operations[selected]
	}

	if *size == "" && *op != "watermark" && *op != "grayscale" {
		value, err := driver.Input(ctx, prompt.InputConfig{
			Message: "Target size (WxH, W, xH, or ratio)",
			Help:    "examples: 640x480, 640, x480, 0.5",
			Validator: func(value string) error {
				_, err := imagery.ParseSize(value)
				return err
			},
		})
		if err != nil {
			return err
		}
		*size = value
	}

	if *output == "" {
		value, err := driver.Input(ctx, prompt.InputConfig{
			Message:   "Destination path",
			Validator: requireValue,
		})
		if err != nil {
			return err
		}
		*output = value
	}
	return nil
}

func requireValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("a value is required")
	}
	return nil
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return 0
}

func runForms(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("forms", flag.ExitOnError)
	defs := fs.String("defs", "", "directory holding form definition files")
	formID := fs.String("form", "user.register", "form definition id")
	flagList := fs.String("flags", "", "comma-separated feature flags, e.g. captcha=true")
	output := fs.String("output", "", "output file (stdout if empty)")
	fs.Parse(args)

	if err := ctx.Err(); err != nil {
		return err
	}

	var def forms.Definition
	switch {
	case *defs != "":
		store, err := forms.LoadFS(os.DirFS(*defs))
		if err != nil {
			return err
		}
		loaded, ok := store.Definition(*formID)
		if !ok {
			return fmt.Errorf("forms: definition %q not found in %s", *formID, *defs)
		}
		def = loaded
	case *formID == forms.Registration().ID:
		def = forms.Registration()
	default:
		return fmt.Errorf("forms: definition %q not found (no -defs directory given)", *formID)
	}

	materialized := def.Materialize(parseFlags(*flagList))
	payload, err := json.MarshalIndent(materialized, "", "  ")
	if err != nil {
		return fmt.Errorf("forms: encode definition: %w", err)
	}
	return writeOutput(*output, append(payload, '\n'))
}

func parseFlags(raw string) forms.Flags {
	flags := forms.Flags{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, found := strings.Cut(pair, "=")
		if !found {
			flags[name] = true
			continue
		}
		flags[strings.TrimSpace(name)] = strings.EqualFold(strings.TrimSpace(value), "true")
	}
	return flags
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("Output written to %s\n", path)
	return nil
}
