package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/output"
	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
	"github.com/df07/go-montecarlo-raytracer/pkg/scene"
)

func main() {
	logger := renderer.NewDefaultLogger()

	if err := loadEnvFile(getEnv(os.LookupEnv, "RAYTRACER_ENV_FILE", ".env")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := parseConfig(os.Args[1:], os.LookupEnv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run renders the configured scene, writes it to disk and optionally
// publishes it
func run(ctx context.Context, cfg *Config, logger core.Logger) error {
	logger.Printf("Starting Monte-Carlo Raytracer...\n")

	s, err := scene.NewSceneByID(cfg.SceneID, float64(cfg.Width)/float64(cfg.Height), cfg.Seed)
	if err != nil {
		return err
	}
	s.SamplingConfig = renderer.SamplingConfig{
		SamplesPerPixel: cfg.Samples,
		MaxDepth:        cfg.MaxDepth,
	}
	logger.Printf("Using %s scene (%d primitives)...\n", cfg.SceneID, s.GetPrimitiveCount())

	if err := s.Preprocess(logger); err != nil {
		return fmt.Errorf("failed to prepare scene: %w", err)
	}
	camera, err := s.NewCamera()
	if err != nil {
		return fmt.Errorf("failed to create camera: %w", err)
	}

	raytracer := renderer.NewRaytracer(s.World, camera, cfg.Width, cfg.Height, logger)
	raytracer.SetSamplingConfig(s.SamplingConfig)
	raytracer.SetSeed(cfg.Seed)
	raytracer.SetNumWorkers(cfg.Workers)

	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}
	logger.Printf("Samples per pixel: %.1f, average luminance %.3f\n", stats.AverageSamples(), stats.AverageLuminance)

	data, err := output.Save(cfg.OutputPath, img)
	if err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", cfg.OutputPath)

	if cfg.PreviewWidth > 0 {
		previewPath := output.PreviewPath(cfg.OutputPath)
		if _, err := output.Save(previewPath, output.Preview(img, cfg.PreviewWidth)); err != nil {
			return err
		}
		logger.Printf("Preview saved as %s\n", previewPath)
	}

	if cfg.S3.Enabled() {
		uploader, err := output.NewS3Uploader(cfg.S3, logger)
		if err != nil {
			return err
		}
		if _, err := uploader.Upload(ctx, cfg.OutputPath, data); err != nil {
			return err
		}
	}

	return nil
}
