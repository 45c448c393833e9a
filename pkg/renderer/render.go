package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// DefaultSeed seeds both the random scene and the pixel samplers
const DefaultSeed = scene.DefaultSeed

var logger = log.New("renderer")

// Options configures a render
type Options struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int

	SceneName  string     // Built-in scene, "" = random book-cover scene
	Scene      Scene      // Overrides SceneName when set
	Seed       int64      // 0 = DefaultSeed
	TileSize   int        // 0 = DefaultTileSize
	NumWorkers int        // 0 = runtime.NumCPU(), 1 = sequential
	Logger     log.Logger // nil = package logger
}

// validate checks the image and sampling parameters
func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, o.Width, o.Height)
	}
	if o.SamplesPerPixel <= 0 || o.MaxDepth <= 0 {
		return fmt.Errorf("%w: got %d samples, depth %d", ErrInvalidSampling, o.SamplesPerPixel, o.MaxDepth)
	}
	return nil
}

// withDefaults fills in zero-valued optional fields
func (o Options) withDefaults() Options {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.TileSize <= 0 {
		o.TileSize = DefaultTileSize
	}
	if o.Logger == nil {
		o.Logger = logger
	}
	return o
}

// Render renders an image with the given options. Tiles are spread across
// NumWorkers goroutines; the output is identical for any worker count.
func Render(ctx context.Context, opts Options) (*image.RGBA, RenderStats, error) {
	if err := opts.validate(); err != nil {
		return nil, RenderStats{}, err
	}
	opts = opts.withDefaults()

	sc := opts.Scene
	if sc == nil {
		s, err := scene.New(opts.SceneName, opts.Seed)
		if err != nil {
			return nil, RenderStats{}, err
		}
		sc = s
	}

	startTime := time.Now()
	raytracer := NewRaytracer(sc, opts.Width, opts.Height, SamplingConfig{
		SamplesPerPixel: opts.SamplesPerPixel,
		MaxDepth:        opts.MaxDepth,
	})

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	tiles := NewTileGrid(opts.Width, opts.Height, opts.TileSize, opts.Seed)
	workerPool := NewWorkerPool(raytracer, len(tiles), opts.NumWorkers)

	opts.Logger.Infof("Rendering %dx%d at %d samples/pixel, depth %d (%d tiles, %d workers)",
		opts.Width, opts.Height, opts.SamplesPerPixel, opts.MaxDepth, len(tiles), workerPool.GetNumWorkers())

	workerPool.Start(ctx)
	for i, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, Image: img, TaskID: i})
	}

	stats := RenderStats{
		SamplesPerPixel: opts.SamplesPerPixel,
		MaxDepth:        opts.MaxDepth,
		NumTiles:        len(tiles),
		NumWorkers:      workerPool.GetNumWorkers(),
	}

	// Every submitted task reports back exactly once, even after cancellation
	var renderErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = ErrPoolClosed
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.merge(result.Stats)
		opts.Logger.Debugf("Tile %d/%d completed", i+1, len(tiles))
	}
	workerPool.Stop()

	if renderErr != nil {
		opts.Logger.Warningf("Render aborted: %v", renderErr)
		return nil, RenderStats{}, renderErr
	}

	stats.Duration = time.Since(startTime)
	opts.Logger.Infof("Render completed in %v (%d rays)", stats.Duration, stats.TotalRays)

	return img, stats, nil
}

// RenderImage renders the random book-cover scene and returns a flat RGBA
// buffer of width*height*4 bytes, top row first, alpha always 255. Identical
// arguments always produce identical bytes.
func RenderImage(height, width, samplesPerPixel, maxDepth int) ([]byte, error) {
	img, _, err := Render(context.Background(), Options{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		MaxDepth:        maxDepth,
	})
	if err != nil {
		return nil, err
	}
	return img.Pix, nil
}
