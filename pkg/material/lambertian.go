package material

import (
	"fmt"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Fraction of light reflected per channel
}

// NewLambertian creates a new lambertian material with a solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// The direction is the normal plus a point in the unit ball, which
// approximates a cosine-weighted distribution. Lambertian never absorbs.
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.SamplePointInUnitSphere(sampler))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return core.ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, scatterDirection, rayIn.Time),
		Attenuation: l.Albedo,
	}, true
}

// Validate checks the albedo is a usable reflectance
func (l *Lambertian) Validate() error {
	return validateAlbedo(l.Albedo)
}

func validateAlbedo(albedo core.Vec3) error {
	if !albedo.IsFinite() {
		return fmt.Errorf("albedo %v is not finite", albedo)
	}
	if albedo.X < 0 || albedo.Y < 0 || albedo.Z < 0 ||
		albedo.X > 1 || albedo.Y > 1 || albedo.Z > 1 {
		return fmt.Errorf("albedo %v outside [0, 1]", albedo)
	}
	return nil
}
