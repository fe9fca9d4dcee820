package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	LookFrom      core.Vec3 // Eye position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction (usually 0,1,0)
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Viewport width / height
	Aperture      float64   // Lens diameter; 0 disables defocus blur
	FocusDistance float64   // Distance to the plane of perfect focus
	Time0, Time1  float64   // Shutter window
}

// DefaultCameraConfig returns the wide establishing shot used by the built-in scenes
func DefaultCameraConfig(aspectRatio float64) CameraConfig {
	return CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   aspectRatio,
		Aperture:      0.1,
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	}
}

// Camera generates rays for rendering. It is immutable after construction
// and safe to share between workers.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal basis
	lensRadius      float64
	time0, time1    float64
}

// NewCamera derives the viewport from config, rejecting degenerate setups
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(viewportWidth * config.FocusDistance)
	vertical := v.Multiply(viewportHeight * config.FocusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(config.FocusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		time0:           config.Time0,
		time1:           config.Time1,
	}, nil
}

// Validate checks that the configuration yields a well-defined basis and viewport
func (c CameraConfig) Validate() error {
	if !c.LookFrom.IsFinite() || !c.LookAt.IsFinite() || !c.Up.IsFinite() {
		return fmt.Errorf("camera vectors must be finite: look-from %v, look-at %v, up %v", c.LookFrom, c.LookAt, c.Up)
	}

	view := c.LookFrom.Subtract(c.LookAt)
	if view.NearZero() {
		return fmt.Errorf("camera look-from %v and look-at %v coincide", c.LookFrom, c.LookAt)
	}
	if c.Up.Cross(view).NearZero() {
		return fmt.Errorf("camera up %v is parallel to the view direction", c.Up)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("camera vertical fov must be in (0, 180) degrees, got %g", c.VFov)
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		return fmt.Errorf("camera aspect ratio must be positive, got %g", c.AspectRatio)
	}
	if !(c.FocusDistance > 0) || math.IsInf(c.FocusDistance, 0) {
		return fmt.Errorf("camera focus distance must be positive, got %g", c.FocusDistance)
	}
	if !(c.Aperture >= 0) || math.IsInf(c.Aperture, 0) {
		return fmt.Errorf("camera aperture must be non-negative, got %g", c.Aperture)
	}
	if c.Time1 < c.Time0 {
		return fmt.Errorf("camera shutter closes (%g) before it opens (%g)", c.Time1, c.Time0)
	}
	return nil
}

// GetRay generates a ray for viewport coordinates (s, t), where [0,1] spans
// the viewport from the lower-left corner. The origin is jittered over the
// lens disk and the ray is stamped with a uniform time from the shutter window.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	lens := core.SamplePointInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(lens.X).Add(c.v.Multiply(lens.Y))
	time := core.SampleRange(sampler, c.time0, c.time1)

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRayAtTime(origin, direction, time)
}

// GetCameraForward returns the unit direction the camera looks along
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}
