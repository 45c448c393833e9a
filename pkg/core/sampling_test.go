package core

import (
	"math"
	"testing"
)

func TestSampleOnUnitSphere_IsUnitLength(t *testing.T) {
	sampler := NewSeededSampler(7)
	for i := 0; i < 1000; i++ {
		v := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(v.Length()-1.0) > 1e-9 {
			t.Fatalf("Sample %d not on unit sphere: %v (length %f)", i, v, v.Length())
		}
	}
}

func TestSamplePointInUnitDisk_StaysInDisk(t *testing.T) {
	sampler := NewSeededSampler(11)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		if p.Z != 0 {
			t.Fatalf("Disk sample has non-zero Z: %v", p)
		}
		if p.Length() > 1.0+1e-9 {
			t.Fatalf("Disk sample outside unit disk: %v", p)
		}
	}

	if p := SamplePointInUnitDisk(NewVec2(0.5, 0.5)); p != (Vec3{}) {
		t.Errorf("Expected center sample to map to origin, got %v", p)
	}
}

func TestSamplePointInUnitSphere_StaysInSphere(t *testing.T) {
	sampler := NewSeededSampler(13)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.Length() > 1.0+1e-9 {
			t.Fatalf("Sphere sample outside unit sphere: %v", p)
		}
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(123456789)
	b := NewSeededSampler(123456789)
	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatalf("Samplers with identical seeds diverged at draw %d", i)
		}
	}
}
