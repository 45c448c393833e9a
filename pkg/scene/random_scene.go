package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// DefaultSeed is the seed the random scene is generated from unless told otherwise
const DefaultSeed int64 = 123456789

// RandomSceneCamera is the camera the random scene is framed for
func RandomSceneCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}
}

// NewRandomScene creates the final scene of "Ray Tracing in One Weekend":
// a huge ground sphere, three large feature spheres and a 22x22 grid of
// small spheres with randomly chosen materials
func NewRandomScene(seed int64) *Scene {
	sampler := core.NewSeededSampler(seed)

	s := &Scene{
		Name:         "random",
		CameraConfig: RandomSceneCamera(),
		SamplingConfig: SamplingConfig{
			Width:           400,
			Height:          225,
			SamplesPerPixel: 10,
			MaxDepth:        10,
		},
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)
			s.Shapes = append(s.Shapes, geometry.NewSphere(center, 0.2, randomMaterial(sampler)))
		}
	}

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	glass := material.NewDielectric(1.5)
	brown := material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))
	bronze := material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)

	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, brown),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, bronze),
	)

	s.Preprocess()
	return s
}

// randomMaterial picks diffuse, metal or glass with equal probability
func randomMaterial(sampler *core.RandomSampler) material.Material {
	switch sampler.Intn(3) {
	case 0:
		albedo := sampler.Get3D()
		return material.NewLambertian(albedo)
	case 1:
		albedo := sampler.Get3D().Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
		return material.NewMetal(albedo, sampler.Get1D()/2)
	default:
		return material.NewDielectric(1.5)
	}
}
