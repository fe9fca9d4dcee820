package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// MovingSphere is a sphere whose center moves linearly from Center0 at Time0
// to Center1 at Time1. Times outside the keyframes extrapolate along the same line.
type MovingSphere struct {
	Center0, Center1 core.Vec3
	Time0, Time1     float64
	Radius           float64
	Material         core.Material
}

// NewMovingSphere creates a sphere interpolated between two keyframes
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, material core.Material) *MovingSphere {
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: material,
	}
}

// CenterAt returns the sphere center at the given shutter time
func (s *MovingSphere) CenterAt(time float64) core.Vec3 {
	fraction := (time - s.Time0) / (s.Time1 - s.Time0)
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply(fraction))
}

// Hit tests the ray against the sphere positioned at the ray's time
func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return hitSphere(s.CenterAt(ray.Time), s.Radius, s.Material, ray, tMin, tMax)
}

// BoundingBox returns the box swept over [time0, time1]
func (s *MovingSphere) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box0 := sphereBox(s.CenterAt(time0), s.Radius)
	box1 := sphereBox(s.CenterAt(time1), s.Radius)
	return core.SurroundingBox(box0, box1), true
}

// Validate checks the keyframes and radius are usable
func (s *MovingSphere) Validate() error {
	if !s.Center0.IsFinite() || !s.Center1.IsFinite() {
		return fmt.Errorf("moving sphere centers %v, %v are not finite", s.Center0, s.Center1)
	}
	if s.Time1 == s.Time0 || math.IsNaN(s.Time0) || math.IsNaN(s.Time1) {
		return fmt.Errorf("moving sphere keyframe times %f and %f must differ", s.Time0, s.Time1)
	}
	return validateRadiusAndMaterial(s.Radius, s.Material)
}
