package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestCamera_CenterRayPointsAtLookAt(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
	}
	camera := NewCamera(config)

	ray := camera.GetRay(0.5, 0.5, core.NewSeededSampler(1))
	expected := config.LookAt.Subtract(config.Center).Normalize()
	if ray.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected center ray direction %v, got %v", expected, ray.Direction)
	}
	if ray.Origin != config.Center {
		t.Errorf("Pinhole camera should shoot from %v, got %v", config.Center, ray.Origin)
	}
}

func TestCamera_VerticalFieldOfView(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 1,
	})

	// Top edge of a 90° frustum is 45° above the view axis
	top := camera.GetRay(0.5, 1.0, nil)
	angle := math.Acos(top.Direction.Dot(core.NewVec3(0, 0, -1))) * 180 / math.Pi
	if math.Abs(angle-45) > 1e-6 {
		t.Errorf("Expected 45° to the top edge, got %f", angle)
	}
	if top.Direction.Y <= 0 {
		t.Errorf("Expected t=1 to point up, got %v", top.Direction)
	}
}

func TestCamera_ApertureJittersOrigin(t *testing.T) {
	config := CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -10),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40,
		AspectRatio:   1,
		Aperture:      0.5,
		FocusDistance: 10,
	}
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(5)

	moved := false
	for i := 0; i < 20; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		if ray.Origin.Length() > 0.25+1e-9 {
			t.Fatalf("Lens sample outside aperture radius: %v", ray.Origin)
		}
		if ray.Origin.Length() > 0 {
			moved = true
		}

		// Every ray through the image center converges on the focal plane
		focus := ray.At(-10 / ray.Direction.Z)
		if focus.Subtract(core.NewVec3(0, 0, -10)).Length() > 1e-9 {
			t.Fatalf("Ray missed focal point: %v", focus)
		}
	}
	if !moved {
		t.Error("Expected aperture to move ray origins")
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := CameraConfig{VFov: 20, Aperture: 0.1, AspectRatio: 16.0 / 9.0}
	merged := MergeCameraConfig(base, CameraConfig{AspectRatio: 2})

	if merged.AspectRatio != 2 {
		t.Errorf("Expected overridden aspect ratio 2, got %f", merged.AspectRatio)
	}
	if merged.VFov != 20 || merged.Aperture != 0.1 {
		t.Errorf("Expected base fields preserved, got %+v", merged)
	}
}
