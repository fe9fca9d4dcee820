package geometry

import (
	"fmt"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// HittableList is a flat collection tested by linear scan
type HittableList struct {
	Objects []core.Hittable
}

// NewHittableList creates a collection over the given objects
func NewHittableList(objects ...core.Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the collection
func (l *HittableList) Add(object core.Hittable) {
	l.Objects = append(l.Objects, object)
}

// Hit returns the closest hit among all objects, independent of insertion order
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox folds all child boxes; children without a box are skipped
func (l *HittableList) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return surroundingBoxOf(l.Objects, time0, time1)
}

// Validate checks every child that can validate itself
func (l *HittableList) Validate() error {
	for i, object := range l.Objects {
		if validator, ok := object.(Validator); ok {
			if err := validator.Validate(); err != nil {
				return fmt.Errorf("object %d: %w", i, err)
			}
		}
	}
	return nil
}

func surroundingBoxOf(objects []core.Hittable, time0, time1 float64) (core.AABB, bool) {
	var result core.AABB
	found := false
	for _, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			continue
		}
		if found {
			result = core.SurroundingBox(result, box)
		} else {
			result = box
			found = true
		}
	}
	return result, found
}
