package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCameraConfig() geometry.CameraConfig
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
	GetWorld() geometry.Shape
}

// Raytracer renders pixels of a scene. It holds no mutable state and may be
// shared by several goroutines as long as each uses its own sampler.
type Raytracer struct {
	scene  Scene
	world  geometry.Shape
	camera *geometry.Camera
	width  int
	height int
	config SamplingConfig
}

// NewRaytracer creates a new raytracer. The camera aspect ratio always
// follows the image dimensions.
func NewRaytracer(scene Scene, width, height int, config SamplingConfig) *Raytracer {
	cameraConfig := scene.GetCameraConfig()
	cameraConfig.AspectRatio = float64(width) / float64(height)

	return &Raytracer{
		scene:  scene,
		world:  scene.GetWorld(),
		camera: geometry.NewCamera(cameraConfig),
		width:  width,
		height: height,
		config: config,
	}
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	topColor, bottomColor := rt.scene.GetBackgroundColors()

	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)
	return bottomColor.Lerp(topColor, t)
}

// rayColor returns the color for a given ray, following up to depth bounces.
// rays is incremented for every ray cast.
func (rt *Raytracer) rayColor(r core.Ray, depth int, sampler core.Sampler, rays *int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}
	*rays++

	// 0.001 avoids self-intersection from floating point error
	hit, isHit := rt.world.Hit(r, 0.001, math.Inf(1))
	if !isHit {
		return rt.backgroundGradient(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, sampler)
	if !didScatter {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(rt.rayColor(scatter.Scattered, depth-1, sampler, rays))
}

// vec3ToColor converts a linear color to RGBA with gamma 2 and clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(2.0).Clamp(0.0, 0.999)

	return color.RGBA{
		R: uint8(256 * colorVec.X),
		G: uint8(256 * colorVec.Y),
		B: uint8(256 * colorVec.Z),
		A: 255,
	}
}

// samplePixel averages SamplesPerPixel jittered rays through image pixel (x, y),
// where y = 0 is the top row
func (rt *Raytracer) samplePixel(x, y int, sampler core.Sampler, rays *int) core.Vec3 {
	// Camera coordinates run bottom-up
	j := rt.height - 1 - y

	colorAccum := core.Vec3{}
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		s := (float64(x) + jitter.X) / float64(rt.width)
		t := (float64(j) + jitter.Y) / float64(rt.height)

		ray := rt.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(rt.rayColor(ray, rt.config.MaxDepth, sampler, rays))
	}

	return colorAccum.Divide(float64(rt.config.SamplesPerPixel))
}

// RenderBounds renders the pixels within bounds into img
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, img *image.RGBA, sampler core.Sampler) RenderStats {
	stats := RenderStats{
		TotalPixels:     bounds.Dx() * bounds.Dy(),
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			colorVec := rt.samplePixel(x, y, sampler, &stats.TotalRays)
			img.SetRGBA(x, y, vec3ToColor(colorVec))
		}
	}

	stats.TotalSamples = stats.TotalPixels * rt.config.SamplesPerPixel
	return stats
}

// renderPass renders the whole image on the calling goroutine
func (rt *Raytracer) renderPass(sampler core.Sampler) (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	stats := rt.RenderBounds(img.Bounds(), img, sampler)
	return img, stats
}
