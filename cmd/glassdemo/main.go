// Command glassdemo renders the liquid glass effect to a PNG without a GPU.
//
// It builds a session, replays scripted drags through the hit tester,
// optionally prints the kernel argument record and writes a preview image.
//
//	glassdemo -drag "400,300:200,150" -shape 1=ellipse -labels -output glass.png
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gogpu/glass"
	"github.com/gogpu/glass/preview"
)

func main() {
	var (
		width      = flag.Int("width", 800, "image width")
		height     = flag.Int("height", 600, "image height")
		output     = flag.String("output", "glass.png", "output file")
		background = flag.String("background", "", "background PNG (default: procedural gradient)")
		tint       = flag.String("tint", "", "glass tint as a color name or #hex")
		allOff     = flag.Bool("all-off", false, "start with every feature disabled")
		labels     = flag.Bool("labels", false, "draw shape type names")
		dump       = flag.Bool("dump", false, "print the uniform record")
		verbose    = flag.Bool("v", false, "debug logging")
		drags      dragList
		shapes     shapeList
	)
	flag.Var(&drags, "drag", `drags as "x0,y0:x1,y1", separated by ';' (repeatable)`)
	flag.Var(&shapes, "shape", `shape slot type as "index=type", e.g. "1=ellipse" (repeatable)`)
	flag.Parse()

	if *verbose {
		glass.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	canvas := glass.Sz(float64(*width), float64(*height))
	session := glass.NewSession(canvas, glass.WithParameters(glass.NewParameters(!*allOff)))
	scene := session.Parameters()
	if *tint != "" {
		c, err := parseTint(*tint, scene.GlassColor.Color)
		if err != nil {
			log.Fatalf("Invalid -tint: %v", err)
		}
		scene.GlassColor.Color = c
	}
	for _, s := range shapes {
		scene.SetShapeType(s.index, s.typ)
		scene.SetShapeEnabled(s.index, true)
	}
	for _, d := range drags {
		replay(session, d)
	}

	u := session.Uniforms()
	if *dump {
		if err := dumpUniforms(os.Stdout, &u); err != nil {
			log.Fatalf("Failed to print uniforms: %v", err)
		}
	}

	var bg image.Image
	if *background != "" {
		img, err := loadPNG(*background)
		if err != nil {
			log.Fatalf("Failed to load background: %v", err)
		}
		bg = img
	} else {
		bg = gradient(*width, *height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, *width, *height))
	var opts []preview.Option
	if *labels {
		opts = append(opts, preview.WithLabels())
	}
	if err := preview.Render(dst, bg, u, opts...); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := savePNG(*output, dst); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Glass saved to %s (%dx%d, %d shapes)\n", *output, *width, *height, scene.EnabledShapes())
}

// replay feeds one drag to the session as a begin, move and end sequence.
func replay(s *glass.Session, d drag) {
	s.HandleEvent(glass.Event{Phase: glass.PhaseBegin, Point: d.from})
	s.HandleEvent(glass.Event{Phase: glass.PhaseChange, Point: d.to})
	s.HandleEvent(glass.Event{Phase: glass.PhaseEnd, Point: d.to})
}

// dumpUniforms prints the record one argument per line in kernel order.
func dumpUniforms(w io.Writer, u *glass.Uniforms) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tKIND\tVALUE")
	schema := glass.Schema()
	for i, v := range u.Values() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, schema[i].Name, v.Kind, formatScalar(v))
	}
	return tw.Flush()
}

func formatScalar(s glass.Scalar) string {
	n := s.Kind.Components()
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%g", s.V[i])
	}
	if n == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// gradient returns a diagonal blue to orange backdrop with a stripe grid,
// which makes refraction easy to see.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := float64(x+y) / float64(max(w+h-2, 1))
			c := color.RGBA{
				R: uint8(40 + t*200),
				G: uint8(70 + t*80),
				B: uint8(200 - t*150),
				A: 255,
			}
			if (x/40)%2 == (y/40)%2 {
				c.R, c.G, c.B = c.R/2+100, c.G/2+100, c.B/2+100
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
