package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Shapes         []geometry.Shape // Objects in the scene
	CameraConfig   geometry.CameraConfig
	SamplingConfig SamplingConfig // Recommended settings for this scene
	TopColor       core.Vec3      // Sky color straight up
	BottomColor    core.Vec3      // Sky color at the horizon and below
	BVH            *geometry.BVH  // Acceleration structure, built by Preprocess
}

// SamplingConfig contains recommended rendering settings for a scene
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Preprocess prepares the scene for rendering
func (s *Scene) Preprocess() {
	s.BVH = geometry.NewBVH(s.Shapes)
}

// GetWorld returns the intersection structure for the whole scene
func (s *Scene) GetWorld() geometry.Shape {
	if s.BVH == nil {
		s.Preprocess()
	}
	return s.BVH
}

// GetCameraConfig returns the scene camera configuration
func (s *Scene) GetCameraConfig() geometry.CameraConfig {
	return s.CameraConfig
}

// GetBackgroundColors returns the sky gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
