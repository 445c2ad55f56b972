// Command canvasdemo renders an animated, draggable canvas component
// headlessly and writes the final frame to a file.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/component"
	"github.com/gogpu/canvas/host"
)

func main() {
	var (
		width   = flag.Int("width", 480, "logical width")
		height  = flag.Int("height", 320, "logical height")
		ratio   = flag.Float64("ratio", 2, "device pixel ratio")
		frames  = flag.Int("frames", 60, "number of frames to animate")
		output  = flag.String("output", "demo.png", "output file")
		mime    = flag.String("type", "image/png", "output MIME type")
		quality = flag.Float64("quality", 0.92, "quality for lossy formats, in (0, 1]")
		verbose = flag.Bool("v", false, "log frame and gesture events")
	)
	flag.Parse()

	if *verbose {
		canvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	h := host.NewVirtual()
	v := newOrbit()
	b := component.New(h, v,
		component.WithDrawMode(component.Continuous),
		component.WithCanvasOptions(canvas.WithPixelRatio(*ratio)),
	)
	b.Init()
	defer b.Dispose()

	v.stars = b.CreateOffscreenBuffer(*width, *height)
	drawStars(v.stars)

	b.Resize(*width, *height)
	b.EnableDragAndDrop(true)

	// Animate, then drag the ball to the lower right corner.
	run(h, *frames/2)
	bx, by := v.ballPosition()
	h.Dispatch(component.PointerEvent{Type: component.PointerDown, X: bx, Y: by})
	h.Advance(component.DefaultDragTimeout)
	tx, ty := float64(*width)*0.75, float64(*height)*0.7
	for i := 1; i <= 10; i++ {
		t := float64(i) / 10
		h.Dispatch(component.PointerEvent{Type: component.PointerMove, X: bx + (tx-bx)*t, Y: by + (ty-by)*t})
		run(h, 1)
	}
	h.Dispatch(component.PointerEvent{Type: component.PointerUp, X: tx, Y: ty})
	run(h, *frames-*frames/2)

	blob := <-b.ToBlob(*mime, *quality)
	if blob == nil {
		log.Fatalf("Failed to encode %s", *mime)
	}
	if err := os.WriteFile(filepath.Clean(*output), blob.Data, 0o644); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%s, %dx%d @%gx, %d bytes)\n",
		*output, blob.Type, *width, *height, *ratio, blob.Size())
}

// run advances the virtual host by n frames of the continuous loop.
func run(h *host.Virtual, n int) {
	for range n {
		h.RunFrame()
		h.Advance(component.DefaultLoopDelay + 6*time.Millisecond)
	}
}
