package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Material decides how a ray continues after striking a surface.
// Materials are immutable after construction and shared by every primitive
// that uses them, so Scatter must not mutate the receiver.
type Material interface {
	// Scatter returns the scattered ray and attenuation, or false when the
	// ray is absorbed.
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Unit normal, always facing against the incoming ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether the geometric outward normal faced the ray
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Hittable is anything a ray can be tested against: primitives and aggregates.
// Hittables are read-only once built and are shared by all render workers.
type Hittable interface {
	// Hit returns the closest intersection with t strictly inside (tMin, tMax)
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	// BoundingBox returns the extent over the shutter window [time0, time1],
	// or false for unbounded or empty objects
	BoundingBox(time0, time1 float64) (AABB, bool)
}
