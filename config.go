package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-montecarlo-raytracer/pkg/output"
	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
)

const (
	defaultWidth  = 1600
	defaultHeight = 800
	defaultSeed   = 42
)

// Config holds everything needed for one render
type Config struct {
	Width        int
	Height       int
	OutputPath   string
	SceneID      string
	Samples      int
	MaxDepth     int
	Seed         int64
	Workers      int // 0 = one per logical CPU
	PreviewWidth int // 0 = no preview
	S3           output.S3Config
}

// envLookup matches os.LookupEnv
type envLookup func(key string) (string, bool)

// loadEnvFile merges an optional .env file into the process environment.
// Variables already set take precedence and a missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// Helper to get environment variables with a default value.
func getEnv(lookup envLookup, key, fallback string) string {
	if value, ok := lookup(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(lookup envLookup, key string, fallback int) (int, error) {
	value, ok := lookup(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", key, value)
	}
	return n, nil
}

// parseConfig reads environment defaults then applies command line flags on top.
// The output path may be given with --out or as the single positional argument.
func parseConfig(args []string, lookup envLookup, usage io.Writer) (*Config, error) {
	sampling := renderer.DefaultSamplingConfig()

	samples, err := getEnvInt(lookup, "RAYTRACER_SAMPLES", sampling.SamplesPerPixel)
	if err != nil {
		return nil, err
	}
	maxDepth, err := getEnvInt(lookup, "RAYTRACER_MAX_DEPTH", sampling.MaxDepth)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvInt(lookup, "RAYTRACER_WORKERS", 0)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvInt(lookup, "RAYTRACER_SEED", defaultSeed)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		S3: output.S3Config{
			Bucket:    getEnv(lookup, "S3_BUCKET", ""),
			Region:    getEnv(lookup, "S3_REGION", "us-east-1"),
			Endpoint:  getEnv(lookup, "S3_ENDPOINT", ""),
			AccessKey: getEnv(lookup, "S3_ACCESS_KEY", ""),
			SecretKey: getEnv(lookup, "S3_SECRET_KEY", ""),
			Prefix:    getEnv(lookup, "S3_PREFIX", ""),
		},
	}

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.IntVar(&cfg.Width, "width", defaultWidth, "Image width in pixels")
	fs.IntVar(&cfg.Height, "height", defaultHeight, "Image height in pixels")
	fs.StringVar(&cfg.OutputPath, "out", "", "Output file (.ppm for plain PPM, otherwise PNG)")
	fs.StringVar(&cfg.SceneID, "scene", "random", "Scene: 'random', 'simple' or 'moving'")
	fs.IntVar(&cfg.Samples, "samples", samples, "Samples per pixel")
	fs.IntVar(&cfg.MaxDepth, "depth", maxDepth, "Maximum ray bounce depth")
	fs.Int64Var(&cfg.Seed, "seed", int64(seed), "Random seed for scene layout and sampling")
	fs.IntVar(&cfg.Workers, "workers", workers, "Number of parallel workers (0 = auto-detect)")
	fs.IntVar(&cfg.PreviewWidth, "preview", 0, "Also write a downscaled preview this many pixels wide (0 = off)")
	fs.Usage = func() {
		fmt.Fprintln(usage, "Monte-Carlo Raytracer")
		fmt.Fprintln(usage, "Usage: raytracer [options] <output-file>")
		fmt.Fprintln(usage)
		fmt.Fprintln(usage, "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		if cfg.OutputPath != "" && cfg.OutputPath != fs.Arg(0) {
			return nil, fmt.Errorf("output path given twice: --out %s and %s", cfg.OutputPath, fs.Arg(0))
		}
		cfg.OutputPath = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected a single output path, got %d arguments", fs.NArg())
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("an output path is required")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.PreviewWidth < 0 {
		return fmt.Errorf("preview width must not be negative, got %d", c.PreviewWidth)
	}
	return renderer.SamplingConfig{SamplesPerPixel: c.Samples, MaxDepth: c.MaxDepth}.Validate()
}
