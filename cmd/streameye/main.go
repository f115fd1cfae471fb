// streameye renders a report from a video-stream analysis document:
// a textual summary on stdout, a 2x2 composite chart image saved next
// to the working directory, and an interactive window showing the same
// composite (skipped with -headless).
//
// The analysis itself is produced by an external analyzer; this tool
// only consumes the finished JSON document.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynecanvas "fyne.io/fyne/v2/canvas"

	"github.com/build-your-own-x-with-ai/AIStreamEye/src/charts"
	"github.com/build-your-own-x-with-ai/AIStreamEye/src/document"
	"github.com/build-your-own-x-with-ai/AIStreamEye/src/logx"
	"github.com/build-your-own-x-with-ai/AIStreamEye/src/series"
	"github.com/build-your-own-x-with-ai/AIStreamEye/src/summary"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: streameye [flags] <analysis.json>")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Example:")
	fmt.Fprintln(os.Stderr, "  video_analyzer_cli input.mp4 --output analysis.json")
	fmt.Fprintln(os.Stderr, "  streameye analysis.json")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func main() {
	var outPath string
	var headless bool
	var logLevel string
	flag.StringVar(&outPath, "out", "", "Output image path (default: <input-base>_visualization.png)")
	flag.BoolVar(&headless, "headless", false, "Render and save without opening a window")
	flag.StringVar(&logLevel, "loglevel", "info", "Log level: debug|info|warn|error")
	flag.Usage = usage
	flag.Parse()
	logx.SetLevel(logLevel)

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	composite, err := run(flag.Arg(0), outPath)
	if err != nil {
		switch {
		case errors.Is(err, document.ErrNotFound):
			fmt.Fprintf(os.Stderr, "Error: file not found: %s\n", flag.Arg(0))
		default:
			var fe *document.FormatError
			if errors.As(err, &fe) {
				fmt.Fprintf(os.Stderr, "Error: invalid analysis document: %v\n", fe.Err)
			} else {
				// render/save failures get the full wrap chain
				chain := errorChain(err)
				fmt.Fprintf(os.Stderr, "Error: %s\n", chain[0])
				for _, cause := range chain[1:] {
					fmt.Fprintf(os.Stderr, "  caused by: %s\n", cause)
				}
			}
		}
		os.Exit(1)
	}

	if !headless {
		show(composite)
	}
}

// run executes the batch part of the pipeline: load, summarize, render
// all four panels, compose and save. It returns the composite so the
// caller can display it.
func run(inPath, outPath string) (image.Image, error) {
	fmt.Printf("Loading analysis from: %s\n", inPath)
	doc, err := document.Load(inPath)
	if err != nil {
		return nil, err
	}

	summary.Print(os.Stdout, doc)

	composite := charts.Composite(
		charts.RenderBitrate(series.Bitrate(doc)),
		charts.RenderFrameTypes(series.FrameTypes(doc)),
		charts.RenderGOPs(series.GOPLengths(doc)),
		charts.RenderFrameSizes(series.FrameSizes(doc)),
	)

	if outPath == "" {
		outPath = outputName(inPath)
	}
	if err := writePNG(outPath, composite); err != nil {
		return nil, fmt.Errorf("save visualization: %w", err)
	}
	fmt.Printf("✅ Visualization saved to: %s\n", outPath)
	return composite, nil
}

// errorChain flattens err and every wrapped cause, outermost first.
func errorChain(err error) []string {
	var out []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		out = append(out, e.Error())
	}
	return out
}

// outputName derives the image name from the input's base name, written
// to the current working directory.
func outputName(inPath string) string {
	base := filepath.Base(inPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_visualization.png"
}

func writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// show blocks in an interactive window until the user dismisses it.
// This is the only display side effect in the program; renderers stay
// headless so they can be tested without a display.
func show(img image.Image) {
	fmt.Println("📊 Displaying interactive plot...")
	a := app.New()
	w := a.NewWindow("Video Stream Analysis Results")
	ci := fynecanvas.NewImageFromImage(img)
	ci.FillMode = fynecanvas.ImageFillContain
	ci.SetMinSize(fyne.NewSize(1100, 700))
	w.SetContent(ci)
	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
	logx.Debugf("viewer window closed")
}
