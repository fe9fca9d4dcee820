package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

func TestMovingSphere_CenterAt(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0, 1, 0.5, testMaterial)

	tests := []struct {
		time     float64
		expected core.Vec3
	}{
		{0, core.NewVec3(0, 0, 0)},
		{0.5, core.NewVec3(0, 1, 0)},
		{1, core.NewVec3(0, 2, 0)},
		{1.5, core.NewVec3(0, 3, 0)},
	}

	for _, tt := range tests {
		if got := sphere.CenterAt(tt.time); got.Subtract(tt.expected).Length() > 1e-12 {
			t.Errorf("time %f: expected %v, got %v", tt.time, tt.expected, got)
		}
	}
}

func TestMovingSphere_HitUsesRayTime(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, -5), core.NewVec3(0, 4, -5), 0, 1, 1, testMaterial)

	// Looking straight down -Z at y=4: only hits once the sphere has moved up
	early := core.NewRayAtTime(core.NewVec3(0, 4, 0), core.NewVec3(0, 0, -1), 0)
	late := core.NewRayAtTime(core.NewVec3(0, 4, 0), core.NewVec3(0, 0, -1), 1)

	if _, ok := sphere.Hit(early, 0.001, math.Inf(1)); ok {
		t.Error("Expected miss at time 0")
	}
	hit, ok := sphere.Hit(late, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit at time 1")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %f", hit.T)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
}

func TestMovingSphere_BoundingBoxCoversWindow(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), 0, 1, 0.5, testMaterial)

	box, ok := sphere.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Moving sphere should have a bounding box")
	}
	expected := core.NewAABB(core.NewVec3(-0.5, -0.5, -0.5), core.NewVec3(2.5, 0.5, 0.5))
	if box != expected {
		t.Errorf("Expected %v, got %v", expected, box)
	}

	for _, time := range []float64{0, 0.25, 0.5, 1} {
		snapshot := sphereBox(sphere.CenterAt(time), sphere.Radius)
		if !box.Contains(snapshot) {
			t.Errorf("Box %v does not contain sphere at time %f", box, time)
		}
	}
}

func TestMovingSphere_Validate(t *testing.T) {
	valid := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 0, 1, 0.2, testMaterial)
	if err := valid.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	sameTimes := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 0.5, 0.5, 0.2, testMaterial)
	if err := sameTimes.Validate(); err == nil {
		t.Error("Expected error for identical keyframe times")
	}

	zeroRadius := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 0, 1, 0, testMaterial)
	if err := zeroRadius.Validate(); err == nil {
		t.Error("Expected error for zero radius")
	}
}
