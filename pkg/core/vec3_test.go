package core

import (
	"math"
	"testing"
)

func vecClose(a, b Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestVec3_Length(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected float64
	}{
		{"zero", NewVec3(0, 0, 0), 0},
		{"unit diagonal", NewVec3(1, 1, 1), math.Sqrt(3)},
		{"mixed signs", NewVec3(3.14, -9.456, 10.007), 14.12145},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.Length(); math.Abs(got-tt.expected) > 1e-5 {
				t.Errorf("Expected length %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestVec3_Arithmetic(t *testing.T) {
	v1 := NewVec3(0.0, 3.13, 1.0)
	v2 := NewVec3(1.0, 0.0, 2.7123)

	if got := v1.Add(v2); !vecClose(got, NewVec3(1.0, 3.13, 3.7123), 1e-12) {
		t.Errorf("Add: got %v", got)
	}
	if got := v1.Subtract(v2); !vecClose(got, NewVec3(-1.0, 3.13, -1.7123), 1e-12) {
		t.Errorf("Subtract: got %v", got)
	}
	if got := v1.Multiply(2.4); !vecClose(got, NewVec3(0, 7.512, 2.4), 1e-12) {
		t.Errorf("Multiply: got %v", got)
	}
	if got := v1.Divide(2.4); !vecClose(got, NewVec3(0, 1.30416, 0.41666), 1e-4) {
		t.Errorf("Divide: got %v", got)
	}
	if got := v1.Dot(NewVec3(1.0, -1.0, 2.7123)); math.Abs(got-(-3.13+2.7123)) > 1e-12 {
		t.Errorf("Dot: got %f", got)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)

	if got := x.Cross(y); !vecClose(got, NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Expected x × y = z, got %v", got)
	}
	if got := y.Cross(x); !vecClose(got, NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected y × x = -z, got %v", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(0.0, 3.13, 1.0).Normalize()
	if !vecClose(v, NewVec3(0, 0.95256, 0.30433), 1e-5) {
		t.Errorf("Unexpected normal %v", v)
	}

	// Zero vector stays zero instead of producing NaN
	zero := NewVec3(0, 0, 0).Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", zero)
	}
}

func TestVec3_IsNearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).IsNearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-3, 0, 0).IsNearZero() {
		t.Error("Expected 1e-3 vector not to be near zero")
	}
}

func TestRay_At(t *testing.T) {
	r := NewRay(NewVec3(3.14, -2.1, 1.4), NewVec3(1.0, -2.1, 3.4).Normalize())

	if p := r.At(0); !vecClose(p, r.Origin, 0) {
		t.Errorf("Expected origin at t=0, got %v", p)
	}

	p := r.At(-1.23)
	if !vecClose(p, NewVec3(2.84141, -1.47297, 0.38481), 1e-4) {
		t.Errorf("Unexpected point at t=-1.23: %v", p)
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), true},
		{"miss above", NewRay(NewVec3(0, 3, 5), NewVec3(0, 0, -1)), false},
		{"parallel inside slab", NewRay(NewVec3(0.5, 0.5, 5), NewVec3(0, 0, -1)), true},
		{"pointing away", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, 0.001, math.Inf(1)); got != tt.expected {
				t.Errorf("Expected hit=%t, got %t", tt.expected, got)
			}
		})
	}
}
