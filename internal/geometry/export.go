package geometry

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ExportPNG rasterizes a rendered map at scale on a white background. The
// work runs in its own goroutine; ctx bounds how long the caller waits.
func ExportPNG(ctx context.Context, svg []byte, vb ViewBox, scale float64) ([]byte, error) {
	w, h := int(vb.W*scale), int(vb.H*scale)
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyViewport
	}

	type result struct {
		b   []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		b, err := rasterize(svg, w, h)
		done <- result{b, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("export png: %w", ctx.Err())
	case r := <-done:
		return r.b, r.err
	}
}

func rasterize(svg []byte, w, h int) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
