package scene

import (
	"fmt"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
	Shapes         []core.Hittable // Objects in the scene
	World          core.Hittable   // Acceleration structure, built by Preprocess
	Seed           int64           // Seed for the BVH split-axis choices
}

// NewScene creates an empty scene with default sampling
func NewScene(cameraConfig renderer.CameraConfig, seed int64) *Scene {
	return &Scene{
		CameraConfig:   cameraConfig,
		SamplingConfig: renderer.DefaultSamplingConfig(),
		Shapes:         make([]core.Hittable, 0),
		Seed:           seed,
	}
}

// Add appends shapes to the scene. The world must be rebuilt with Preprocess afterwards.
func (s *Scene) Add(shapes ...core.Hittable) {
	s.Shapes = append(s.Shapes, shapes...)
	s.World = nil
}

// Validate checks every shape that knows how to validate itself, and the camera
func (s *Scene) Validate() error {
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("invalid camera: %w", err)
	}
	for i, shape := range s.Shapes {
		validator, ok := shape.(geometry.Validator)
		if !ok {
			continue
		}
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("invalid shape %d (%T): %w", i, shape, err)
		}
	}
	return nil
}

// Preprocess validates the scene and builds the BVH over the camera's
// shutter window. It must be called before rendering.
func (s *Scene) Preprocess(logger core.Logger) error {
	if err := s.Validate(); err != nil {
		return err
	}

	sampler := core.NewSeededSampler(s.Seed)
	s.World = geometry.NewBVH(s.Shapes, s.CameraConfig.Time0, s.CameraConfig.Time1, sampler)

	stats := geometry.CollectBVHStats(s.World)
	logger.Printf("Built BVH over %d primitives: %d nodes, max depth %d\n",
		len(s.Shapes), stats.TotalNodes, stats.MaxDepth)
	return nil
}

// NewCamera builds the camera described by the scene
func (s *Scene) NewCamera() (*renderer.Camera, error) {
	return renderer.NewCamera(s.CameraConfig)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		count += countPrimitivesInShape(shape)
	}
	return count
}

// countPrimitivesInShape counts primitives in a single shape, descending into collections
func countPrimitivesInShape(shape core.Hittable) int {
	switch obj := shape.(type) {
	case *geometry.HittableList:
		count := 0
		for _, child := range obj.Objects {
			count += countPrimitivesInShape(child)
		}
		return count
	case geometry.Empty:
		return 0
	default:
		// Regular shapes count as 1 primitive each
		return 1
	}
}
