package renderer

import (
	"image/color"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// MockScene is a minimal scene for raytracer tests
type MockScene struct {
	shapes      []geometry.Shape
	camera      geometry.CameraConfig
	topColor    core.Vec3
	bottomColor core.Vec3
}

func (m *MockScene) GetCameraConfig() geometry.CameraConfig      { return m.camera }
func (m *MockScene) GetBackgroundColors() (core.Vec3, core.Vec3) { return m.topColor, m.bottomColor }
func (m *MockScene) GetWorld() geometry.Shape                    { return geometry.NewHittableList(m.shapes...) }

// absorber never scatters
type absorber struct{}

func (absorber) Scatter(core.Ray, material.HitRecord, core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

// createMockScene creates a camera looking down -Z at the given shapes
func createMockScene(shapes ...geometry.Shape) *MockScene {
	return &MockScene{
		shapes: shapes,
		camera: geometry.CameraConfig{
			Center: core.NewVec3(0, 0, 0),
			LookAt: core.NewVec3(0, 0, -1),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   90.0,
		},
		topColor:    core.NewVec3(0.5, 0.7, 1.0),
		bottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec3
		expected color.RGBA
	}{
		{"black", core.NewVec3(0, 0, 0), color.RGBA{0, 0, 0, 255}},
		{"white", core.NewVec3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"overexposed clamps", core.NewVec3(4, 4, 4), color.RGBA{255, 255, 255, 255}},
		{"negative clamps", core.NewVec3(-1, -1, -1), color.RGBA{0, 0, 0, 255}},
		{"gamma 2", core.NewVec3(0.25, 0.25, 0.25), color.RGBA{128, 128, 128, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vec3ToColor(tt.input)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestBackgroundGradient(t *testing.T) {
	s := createMockScene()
	rt := NewRaytracer(s, 10, 10, DefaultSamplingConfig())

	up := rt.backgroundGradient(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)))
	if up != s.topColor {
		t.Errorf("Expected top color %v for upward ray, got %v", s.topColor, up)
	}

	down := rt.backgroundGradient(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)))
	if down != s.bottomColor {
		t.Errorf("Expected bottom color %v for downward ray, got %v", s.bottomColor, down)
	}
}

func TestRayColor_DepthExhausted(t *testing.T) {
	rt := NewRaytracer(createMockScene(), 10, 10, DefaultSamplingConfig())
	rays := 0

	got := rt.rayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0, core.NewSeededSampler(1), &rays)
	if got != (core.Vec3{}) {
		t.Errorf("Expected black at depth 0, got %v", got)
	}
	if rays != 0 {
		t.Errorf("Expected no rays cast at depth 0, got %d", rays)
	}
}

func TestRayColor_AbsorbingSphere(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, absorber{})
	rt := NewRaytracer(createMockScene(sphere), 10, 10, DefaultSamplingConfig())
	rays := 0

	got := rt.rayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 10, core.NewSeededSampler(1), &rays)
	if got != (core.Vec3{}) {
		t.Errorf("Expected absorbed ray to be black, got %v", got)
	}
	if rays != 1 {
		t.Errorf("Expected exactly one ray, got %d", rays)
	}
}

func TestRayColor_MirrorBounce(t *testing.T) {
	// A perfect mirror facing the camera reflects the ray back into the sky
	mirror := material.NewMetal(core.NewVec3(0.5, 0.5, 0.5), 0)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -2), 1, mirror)
	s := createMockScene(sphere)
	rt := NewRaytracer(s, 10, 10, DefaultSamplingConfig())
	rays := 0

	got := rt.rayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 10, core.NewSeededSampler(1), &rays)

	// The reflected ray travels along +Z, halfway between the sky colors
	sky := s.bottomColor.Lerp(s.topColor, 0.5)
	expected := sky.Multiply(0.5)
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if rays != 2 {
		t.Errorf("Expected 2 rays (camera + bounce), got %d", rays)
	}
}

func TestRenderPass_SkyGradientTopBluer(t *testing.T) {
	rt := NewRaytracer(createMockScene(), 8, 8, SamplingConfig{SamplesPerPixel: 4, MaxDepth: 5})
	img, stats := rt.renderPass(core.NewSeededSampler(7))

	top := img.RGBAAt(4, 0)
	bottom := img.RGBAAt(4, 7)
	if top.R >= bottom.R {
		t.Errorf("Expected top row to be bluer than bottom row, got top %v bottom %v", top, bottom)
	}
	if top.A != 255 || bottom.A != 255 {
		t.Errorf("Expected opaque pixels, got alpha %d and %d", top.A, bottom.A)
	}

	if stats.TotalPixels != 64 {
		t.Errorf("Expected 64 pixels, got %d", stats.TotalPixels)
	}
	if stats.TotalSamples != 256 {
		t.Errorf("Expected 256 samples, got %d", stats.TotalSamples)
	}
	// Every camera ray escapes straight to the sky
	if stats.TotalRays != 256 {
		t.Errorf("Expected 256 rays, got %d", stats.TotalRays)
	}
}
