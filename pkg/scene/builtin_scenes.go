package scene

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
)

// Small spheres keep clear of the big metal sphere by this distance
const clearance = 0.9

// NewRandomScene creates the "many small spheres" scene: a 22x22 grid of
// randomly jittered small spheres around three large feature spheres, on a
// huge ground sphere. seed drives both the layout and the BVH build.
func NewRandomScene(aspectRatio float64, seed int64) *Scene {
	s := NewScene(renderer.DefaultCameraConfig(aspectRatio), seed)
	sampler := core.NewSeededSampler(seed)

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	forEachGridCell(sampler, func(center core.Vec3, chooseMat float64) {
		s.Add(geometry.NewSphere(center, 0.2, randomMaterial(sampler, chooseMat)))
	})

	addFeatureSpheres(s)
	return s
}

// NewMovingScene is the random scene with its diffuse spheres bouncing
// upward during the shutter window, producing motion blur
func NewMovingScene(aspectRatio float64, seed int64) *Scene {
	s := NewScene(renderer.DefaultCameraConfig(aspectRatio), seed)
	sampler := core.NewSeededSampler(seed)
	time0, time1 := s.CameraConfig.Time0, s.CameraConfig.Time1

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	forEachGridCell(sampler, func(center core.Vec3, chooseMat float64) {
		mat := randomMaterial(sampler, chooseMat)
		if _, diffuse := mat.(*material.Lambertian); diffuse {
			end := center.Add(core.NewVec3(0, core.SampleRange(sampler, 0, 0.5), 0))
			s.Add(geometry.NewMovingSphere(center, end, time0, time1, 0.2, mat))
			return
		}
		s.Add(geometry.NewSphere(center, 0.2, mat))
	})

	addFeatureSpheres(s)
	return s
}

// NewSimpleScene creates the small three-material scene: a diffuse sphere
// flanked by glass and fuzzy gold on a large diffuse ground
func NewSimpleScene(aspectRatio float64, seed int64) *Scene {
	lookFrom := core.NewVec3(3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)
	cameraConfig := renderer.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   aspectRatio,
		Aperture:      0.1,
		FocusDistance: lookFrom.Subtract(lookAt).Length(),
		Time0:         0.0,
		Time1:         1.0,
	}
	s := NewScene(cameraConfig, seed)

	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertianBlue),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
	)
	return s
}

// forEachGridCell visits the 22x22 grid of small-sphere slots, skipping
// slots that would crowd the big metal sphere
func forEachGridCell(sampler core.Sampler, place func(center core.Vec3, chooseMat float64)) {
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= clearance {
				continue
			}
			place(center, chooseMat)
		}
	}
}

// randomMaterial picks diffuse 80% of the time, metal 15% and glass 5%
func randomMaterial(sampler core.Sampler, chooseMat float64) core.Material {
	switch {
	case chooseMat < 0.8:
		albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
		return material.NewLambertian(albedo)
	case chooseMat < 0.95:
		albedo := core.NewVec3(
			core.SampleRange(sampler, 0.5, 1),
			core.SampleRange(sampler, 0.5, 1),
			core.SampleRange(sampler, 0.5, 1),
		)
		fuzz := core.SampleRange(sampler, 0, 0.5)
		return material.NewMetal(albedo, fuzz)
	default:
		return material.NewDielectric(1.5)
	}
}

func addFeatureSpheres(s *Scene) {
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)
}
