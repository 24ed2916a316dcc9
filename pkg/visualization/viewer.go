package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"neurotree/pkg/skeleton"
)

// Viewer rasterizes skeleton polylines into a 2D projection. The projection
// drops one axis, the same way a slice is taken through a volume.
type Viewer struct {
	// Width and Height are the canvas size in pixels
	Width  int
	Height int

	// Margin is the blank border kept around the drawing
	Margin int

	// Axis is the axis projected away: x, y or z
	Axis string
}

// NewViewer creates a viewer with the given canvas size and projection axis
func NewViewer(width, height, margin int, axis string) *Viewer {
	return &Viewer{
		Width:  width,
		Height: height,
		Margin: margin,
		Axis:   axis,
	}
}

// project maps a 3D point onto the plane orthogonal to the viewer axis
func (v *Viewer) project(p r3.Vec) (float64, float64, error) {
	switch v.Axis {
	case "x", "X":
		// YZ plane
		return p.Z, p.Y, nil
	case "y", "Y":
		// XZ plane
		return p.X, p.Z, nil
	case "z", "Z", "":
		// XY plane
		return p.X, p.Y, nil
	default:
		return 0, 0, fmt.Errorf("invalid axis: %s (must be x, y, or z)", v.Axis)
	}
}

// Render draws every polyline in white on a black canvas
func (v *Viewer) Render(lines []skeleton.Polyline) (image.Image, error) {
	if v.Width <= 0 || v.Height <= 0 {
		return nil, fmt.Errorf("canvas dimensions must be positive")
	}
	if v.Margin < 0 || 2*v.Margin >= v.Width || 2*v.Margin >= v.Height {
		return nil, fmt.Errorf("margin %d does not fit a %dx%d canvas", v.Margin, v.Width, v.Height)
	}

	img := image.NewGray16(image.Rect(0, 0, v.Width, v.Height))

	// Find the projected bounding box
	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	for _, l := range lines {
		for _, p := range l.Points {
			u, w, err := v.project(p)
			if err != nil {
				return nil, err
			}
			minU, maxU = math.Min(minU, u), math.Max(maxU, u)
			minV, maxV = math.Min(minV, w), math.Max(maxV, w)
		}
	}
	if math.IsInf(minU, 1) {
		return img, nil
	}

	// Uniform scale so the drawing keeps its aspect ratio
	innerW := float64(v.Width - 1 - 2*v.Margin)
	innerH := float64(v.Height - 1 - 2*v.Margin)
	scale := math.Inf(1)
	if maxU > minU {
		scale = innerW / (maxU - minU)
	}
	if maxV > minV {
		scale = math.Min(scale, innerH/(maxV-minV))
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}

	toPixel := func(p r3.Vec) (int, int) {
		u, w, _ := v.project(p)
		x := v.Margin + int(math.Round((u-minU)*scale))
		y := v.Margin + int(math.Round((w-minV)*scale))
		// image rows grow downwards
		return x, v.Height - 1 - y
	}

	white := color.Gray16{Y: 65535}
	for _, l := range lines {
		for i := range l.Points {
			x1, y1 := toPixel(l.Points[i])
			if i == 0 {
				img.SetGray16(x1, y1, white)
				continue
			}
			x0, y0 := toPixel(l.Points[i-1])
			drawLine(img, x0, y0, x1, y1, white)
		}
	}

	return img, nil
}

// drawLine rasterizes a line with Bresenham's algorithm
func drawLine(img *image.Gray16, x0, y0, x1, y1 int, c color.Gray16) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		img.SetGray16(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// SaveImage writes img to filename as PNG if the extension is .png and as
// JPEG otherwise
func SaveImage(img image.Image, filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	asPNG := strings.EqualFold(filepath.Ext(filename), ".png")
	if err := writeImage(file, img, asPNG); err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}
	return nil
}

// writeImage encodes img to w and closes it. A close failure is reported
// when encoding succeeded, since buffered data may not have been written.
func writeImage(w io.WriteCloser, img image.Image, asPNG bool) error {
	var err error
	if asPNG {
		err = png.Encode(w, img)
	} else {
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}
