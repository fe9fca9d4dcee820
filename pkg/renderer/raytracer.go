package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate rejects configurations that would render nothing
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}

// Self-intersection guard for secondary rays
const hitEpsilon = 0.001

// Raytracer renders a world through a camera into an RGBA image
type Raytracer struct {
	world      core.Hittable
	camera     *Camera
	width      int
	height     int
	config     SamplingConfig
	seed       int64
	numWorkers int
	logger     core.Logger
}

// NewRaytracer creates a new raytracer with default sampling, seed 42 and
// one worker per logical CPU
func NewRaytracer(world core.Hittable, camera *Camera, width, height int, logger core.Logger) *Raytracer {
	return &Raytracer{
		world:  world,
		camera: camera,
		width:  width,
		height: height,
		config: DefaultSamplingConfig(),
		seed:   42, // Deterministic by default
		logger: logger,
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// SetSeed sets the base seed that every row generator is derived from
func (rt *Raytracer) SetSeed(seed int64) {
	rt.seed = seed
}

// SetNumWorkers sets the worker count; 0 means one per logical CPU
func (rt *Raytracer) SetNumWorkers(numWorkers int) {
	rt.numWorkers = numWorkers
}

// Background returns the sky gradient for a ray that escaped the scene:
// white at the horizon blending to sky blue straight up
func Background(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)

	white := core.NewVec3(1.0, 1.0, 1.0)
	skyBlue := core.NewVec3(0.5, 0.7, 1.0)
	return white.Multiply(1.0 - t).Add(skyBlue.Multiply(t))
}

// RayColor returns the radiance carried back along r. depth is the bounce
// budget; an exhausted budget contributes black.
func RayColor(r core.Ray, world core.Hittable, depth int, sampler core.Sampler) core.Vec3 {
	var rays int64
	return rayColor(r, world, depth, sampler, &rays)
}

func rayColor(r core.Ray, world core.Hittable, depth int, sampler core.Sampler, rays *int64) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}
	*rays++

	hit, isHit := world.Hit(r, hitEpsilon, math.Inf(1))
	if !isHit {
		return Background(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, sampler)
	if !didScatter {
		return core.Vec3{} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(rayColor(scatter.Scattered, world, depth-1, sampler, rays))
}

// vec3ToColor converts a linear color to RGBA with gamma-2 correction and clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(2.0)
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// viewportDenominators returns the divisors mapping pixel indices to viewport
// coordinates. A one-pixel dimension divides by 1 instead of 0.
func (rt *Raytracer) viewportDenominators() (float64, float64) {
	uDenom := float64(max(rt.width-1, 1))
	vDenom := float64(max(rt.height-1, 1))
	return uDenom, vDenom
}

// pixelRay casts one jittered camera ray through pixel i of scanline j
// (scanline 0 is the bottom of the image)
func (rt *Raytracer) pixelRay(i, j int, sampler core.Sampler) core.Ray {
	uDenom, vDenom := rt.viewportDenominators()
	du, dv := sampler.Get2D()
	s := (float64(i) + du) / uDenom
	t := (float64(j) + dv) / vDenom
	return rt.camera.GetRay(s, t, sampler)
}

// samplePixel averages SamplesPerPixel traced samples for pixel i of scanline j
func (rt *Raytracer) samplePixel(i, j int, sampler core.Sampler, rays *int64) core.Vec3 {
	colorAccum := core.Vec3{}
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		ray := rt.pixelRay(i, j, sampler)
		colorAccum.AddAssign(rayColor(ray, rt.world, rt.config.MaxDepth, sampler, rays))
	}
	return colorAccum.Multiply(1.0 / float64(rt.config.SamplesPerPixel))
}

// RenderRow renders image row `row` (0 = top) with the given sampler.
// It reads only immutable state and may run concurrently with other rows.
func (rt *Raytracer) RenderRow(row int, sampler core.Sampler) RowResult {
	scanline := rt.height - 1 - row
	result := RowResult{
		Row:    row,
		Pixels: make([]color.RGBA, rt.width),
	}

	for i := 0; i < rt.width; i++ {
		linear := rt.samplePixel(i, scanline, sampler, &result.Rays)
		result.Pixels[i] = vec3ToColor(linear)
		result.Samples += rt.config.SamplesPerPixel
	}

	return result
}

// rowSeed derives a well-spread generator seed for one image row so output
// depends only on the base seed, never on scheduling
func rowSeed(seed int64, row int) int64 {
	return int64(uint64(seed)*6364136223846793005 + uint64(row+1)*1442695040888963407)
}

// NewRowSampler returns the generator used for image row `row`
func NewRowSampler(seed int64, row int) core.Sampler {
	return core.NewSeededSampler(rowSeed(seed, row))
}

// Render traces the whole image in parallel across rows. Rows are written
// back by index, so the result is identical for any worker count.
// Only context cancellation or invalid dimensions produce an error.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("image dimensions must be positive, got %dx%d", rt.width, rt.height)
	}
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))

	numWorkers := rt.numWorkers
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}
	rt.logger.Printf("Rendering %dx%d at %d spp (depth %d) with %d workers...\n",
		rt.width, rt.height, rt.config.SamplesPerPixel, rt.config.MaxDepth, numWorkers)

	pool := NewWorkerPool(rt, numWorkers, rt.height)
	pool.Start(ctx)
	for row := 0; row < rt.height; row++ {
		pool.SubmitTask(RowTask{Row: row, Seed: rt.seed})
	}

	stats := RenderStats{TotalPixels: rt.width * rt.height}
	for received := 0; received < rt.height; received++ {
		var result RowResult
		select {
		case <-ctx.Done():
			pool.Stop()
			return nil, stats, fmt.Errorf("render cancelled after %d of %d rows: %w", received, rt.height, ctx.Err())
		case result = <-pool.Results():
		}

		if result.Error != nil {
			pool.Stop()
			return nil, stats, fmt.Errorf("render cancelled after %d of %d rows: %w", received, rt.height, result.Error)
		}

		for i, pixel := range result.Pixels {
			img.SetRGBA(i, result.Row, pixel)
		}
		stats.TotalSamples += result.Samples
		stats.RaysTraced += result.Rays
	}
	pool.Stop()

	stats.Duration = time.Since(startTime)
	stats.AverageLuminance = CalculateAverageLuminance(img)
	rt.logger.Printf("Render completed in %v (%d samples, %d rays, %.0f rays/s)\n",
		stats.Duration, stats.TotalSamples, stats.RaysTraced, stats.RaysPerSecond())

	return img, stats, nil
}
