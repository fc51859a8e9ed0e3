package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"golang.org/x/image/draw"
)

// screenshotScaler rasterizes the core's 320x256 RGB frame into a PNG,
// scaling it with x/image/draw the same way the teacher's off-screen
// compositing path scales a framebuffer before encoding.
type screenshotScaler struct {
	scale int
}

// save scales rgb (row-major, 3 bytes/pixel, w x h) by
// s.scale using bilinear interpolation and writes it to a timestamped PNG
// in dir.
func (s screenshotScaler) save(dir string, rgb []byte, w, h int) (string, error) {
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := (y*w + x) * 3
			src.SetRGBA(x, y, color.RGBA{R: rgb[o], G: rgb[o+1], B: rgb[o+2], A: 0xFF})
		}
	}

	scale := s.scale
	if scale < 1 {
		scale = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	name := fmt.Sprintf("%s/spectrum-%d.png", dir, time.Now().UnixNano())
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := png.Encode(f, dst); err != nil {
		return "", err
	}
	return name, nil
}
