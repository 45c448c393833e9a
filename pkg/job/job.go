// Package job defines the render request/result protocol and the two ways of
// executing it: inline on the caller's goroutine, or on a single background
// worker host.
package job

import (
	"context"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

var logger = log.New("job")

// RenderRequest is the message sent to a renderer. Field names match the
// form element IDs of the page.
type RenderRequest struct {
	ImageHeight     int `json:"image_height"`
	ImageWidth      int `json:"image_width"`
	SamplesPerPixel int `json:"samples_per_pixel"`
	MaxDepth        int `json:"max_depth"`
}

// RenderResult is the message sent back once a render finishes
type RenderResult struct {
	Image     []byte  `json:"image"`      // RGBA, width*height*4 bytes, top row first
	Width     int     `json:"width"`      // Echoed from the request
	Height    int     `json:"height"`     // Echoed from the request
	TimeTaken float64 `json:"time_taken"` // Wall-clock milliseconds
	Error     string  `json:"error,omitempty"`
}

// RenderFunc produces the pixel buffer for a request
type RenderFunc func(ctx context.Context, req RenderRequest) ([]byte, error)

// NewRenderFunc returns a RenderFunc that renders with base options, taking
// the image size and sampling parameters from each request
func NewRenderFunc(base renderer.Options) RenderFunc {
	return func(ctx context.Context, req RenderRequest) ([]byte, error) {
		opts := base
		opts.Width = req.ImageWidth
		opts.Height = req.ImageHeight
		opts.SamplesPerPixel = req.SamplesPerPixel
		opts.MaxDepth = req.MaxDepth

		img, _, err := renderer.Render(ctx, opts)
		if err != nil {
			return nil, err
		}
		return img.Pix, nil
	}
}

// Run executes one request and times it. Render errors are reported in the
// result rather than returned.
func Run(ctx context.Context, render RenderFunc, req RenderRequest) RenderResult {
	logger.Debugf("Running render %dx%d, %d samples/pixel, depth %d",
		req.ImageWidth, req.ImageHeight, req.SamplesPerPixel, req.MaxDepth)

	start := time.Now()
	pixels, err := render(ctx, req)
	elapsed := time.Since(start)

	result := RenderResult{
		Image:     pixels,
		Width:     req.ImageWidth,
		Height:    req.ImageHeight,
		TimeTaken: float64(elapsed) / float64(time.Millisecond),
	}
	if err != nil {
		logger.Warningf("Render failed after %v: %v", elapsed, err)
		result.Image = nil
		result.Error = err.Error()
		return result
	}

	logger.Debugf("Render finished in %.2fms", result.TimeTaken)
	return result
}
