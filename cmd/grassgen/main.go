// grassgen is a headless CLI for generating grass fields, masks and ground
// textures.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/texture"
	"github.com/Faultbox/meadow/internal/export"
	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/internal/mask"
	"github.com/Faultbox/meadow/internal/scene"
	"github.com/Faultbox/meadow/internal/stats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "generate", "gen":
		err = cmdGenerate(args)
	case "mask":
		err = cmdMask(args)
	case "texture", "tex":
		err = cmdTexture(args)
	case "stats":
		err = cmdStats(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`grassgen - procedural grass field utility

Usage:
  grassgen <command> [options]

Commands:
  generate [-config f] [-seed n] [-blades n] [-mask f] [-o file.obj]
                          Generate a field and write it as OBJ
  mask [-size n] [-seed n] [-scale s] [-feather r] [-o file.png]
                          Write a noise placement mask
  texture [-size n] [-seed n] [-o file.png]
                          Write a ground texture
  stats [-config f] [-runs n] [-seed n] [-o report.csv]
                          Generate repeatedly and write a CSV report

Examples:
  grassgen generate -blades 50000 -o out/field.obj
  grassgen mask -size 512 -scale 64 -feather 4 -o out/mask.png
  grassgen generate -mask out/mask.png -seed 7
  grassgen stats -runs 20 -o out/report.csv`)
}

// loadConfig loads path (or the default config search) and sets up logging.
func loadConfig(path string, debug bool) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Logging.Level = "debug"
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, nil
}

func cmdGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file")
	seed := fs.Uint64("seed", 0, "Random seed (0 = config or time based)")
	blades := fs.Int("blades", -1, "Number of grass blades")
	maskPath := fs.String("mask", "", "Path to placement mask image")
	out := fs.String("o", "", "Output OBJ path (default <output.dir>/field-<seed>.obj)")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath, *debug)
	if err != nil {
		return err
	}
	if *seed != 0 {
		cfg.Field.Seed = *seed
	}
	if *blades >= 0 {
		cfg.Field.BladeCount = *blades
	}
	if *maskPath != "" {
		cfg.Mask.Path = *maskPath
	}

	field, err := scene.NewField(cfg, logger.Named("field"))
	if err != nil {
		return err
	}

	s := field.Seed()
	start := time.Now()
	mesh, err := field.Generate(s)
	if err != nil {
		return err
	}
	took := time.Since(start)

	summary, err := stats.Summarize(mesh, cfg.Field.PlaneSize, stats.DefaultRadialBins)
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = filepath.Join(cfg.Output.Dir, fmt.Sprintf("field-%d.obj", s))
	}
	if err := export.SaveOBJ(path, mesh, mesh.VertexNormals()); err != nil {
		return err
	}

	logger.Info("field generated",
		zap.String("path", path),
		zap.Uint64("seed", s),
		zap.Int("requested", cfg.Field.BladeCount),
		zap.Int("blades", summary.Blades),
		zap.Int("vertices", summary.Vertices),
		zap.Int("triangles", summary.Triangles),
		zap.Float64("height_mean", summary.HeightMean),
		zap.Float64("height_stddev", summary.HeightStdDev),
		zap.Float64("radial_p", summary.Radial.PValue),
		zap.Duration("took", took),
	)
	return nil
}

func cmdMask(args []string) error {
	fs := flag.NewFlagSet("mask", flag.ExitOnError)
	size := fs.Int("size", 512, "Mask width and height in pixels")
	seed := fs.Int64("seed", 1, "Noise seed")
	scale := fs.Float64("scale", 64, "Noise feature size in pixels")
	threshold := fs.Float64("threshold", 0, "Binarize at this level (0 = keep gradient)")
	feather := fs.Float64("feather", 0, "Gaussian blur radius in pixels")
	out := fs.String("o", "mask.png", "Output image path")
	fs.Parse(args)

	if _, err := loadConfig("", false); err != nil {
		return err
	}
	if *size <= 0 {
		return fmt.Errorf("mask size must be positive, got %d", *size)
	}

	m := mask.Noise(*size, *size, *seed, *scale)
	if *threshold > 0 {
		t := mask.Threshold{Level: float32(*threshold), Include: mask.IncludeLight}
		for i, v := range m.Data {
			if t.Accept(v, nil) {
				m.Data[i] = 1
			} else {
				m.Data[i] = 0
			}
		}
	}
	if *feather > 0 {
		m = m.Feather(*feather)
	}
	if err := m.Save(*out); err != nil {
		return err
	}

	logger.Info("mask written",
		zap.String("path", *out),
		zap.Int("size", *size),
		zap.Float64("dark_coverage", m.Coverage(0.5, mask.IncludeDark)),
	)
	return nil
}

func cmdTexture(args []string) error {
	fs := flag.NewFlagSet("texture", flag.ExitOnError)
	size := fs.Int("size", 768, "Texture width and height in pixels")
	seed := fs.Uint64("seed", 1, "Random seed")
	out := fs.String("o", "ground.png", "Output image path")
	fs.Parse(args)

	if _, err := loadConfig("", false); err != nil {
		return err
	}
	if *size <= 0 {
		return fmt.Errorf("texture size must be positive, got %d", *size)
	}

	opts := texture.DefaultGroundOptions()
	opts.Width, opts.Height = *size, *size
	img := texture.GenerateGround(opts, grass.NewRand(*seed))

	if dir := filepath.Dir(*out); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := imgio.Save(*out, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("saving texture: %w", err)
	}

	logger.Info("texture written", zap.String("path", *out), zap.Int("size", *size))
	return nil
}

func cmdStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file")
	runs := fs.Int("runs", 10, "Number of fields to generate")
	seed := fs.Uint64("seed", 1, "Seed of the first run; later runs add the run index")
	out := fs.String("o", "report.csv", "Output CSV path")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath, false)
	if err != nil {
		return err
	}
	if *runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", *runs)
	}

	field, err := scene.NewField(cfg, logger.Named("field"))
	if err != nil {
		return err
	}

	records := make([]stats.RunRecord, 0, *runs)
	for run := range *runs {
		s := *seed + uint64(run)
		start := time.Now()
		mesh, err := field.Generate(s)
		if err != nil {
			return fmt.Errorf("run %d: %w", run, err)
		}
		took := time.Since(start)

		summary, err := stats.Summarize(mesh, cfg.Field.PlaneSize, stats.DefaultRadialBins)
		if err != nil {
			return fmt.Errorf("run %d: %w", run, err)
		}
		records = append(records, stats.NewRunRecord(run, s, cfg.Field.BladeCount, took, summary))
		logger.Debug("run finished", zap.Int("run", run), zap.Int("blades", summary.Blades), zap.Duration("took", took))
	}

	if err := stats.SaveCSV(*out, records); err != nil {
		return err
	}
	logger.Info("report written", zap.String("path", *out), zap.Int("runs", len(records)))
	return nil
}
