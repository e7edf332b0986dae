package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"whitted-renderer/internal/batch"
	"whitted-renderer/internal/config"
	"whitted-renderer/internal/imageio"
	"whitted-renderer/internal/render"
	"whitted-renderer/internal/scene"
	"whitted-renderer/internal/scenefile"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to batch config (.json or .yaml)")
	sceneFile := flag.String("scene", "", "Scene file to render (default: built-in demo room)")
	out := flag.String("out", "trace.png", "Output image for a single render (.png, .webp, .tga, .bmp)")
	outputDir := flag.String("output", "", "Output directory for batch renders (default: renders)")
	format := flag.String("format", "", "Batch output format: png, webp, tga, bmp (default: png)")
	thumb := flag.Int("thumb", 0, "Also write a thumbnail with this longest side")
	workers := flag.Int("workers", 0, "Number of scenes rendered in parallel (default: NumCPU)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Batch mode: a config file or positional scene files
	if *configFile != "" || flag.NArg() > 0 {
		os.Exit(runBatch(*configFile, config.Flags{
			Scenes:    flag.Args(),
			OutputDir: *outputDir,
			Format:    *format,
			Thumbnail: *thumb,
			Workers:   *workers,
		}))
	}

	if err := renderOne(*sceneFile, *out, *thumb); err != nil {
		log.Error().Err(err).Msg("render failed")
		os.Exit(1)
	}
}

func renderOne(sceneFile, out string, thumb int) error {
	s, viewCfg := scene.Default(), render.DefaultViewConfig()
	if sceneFile != "" {
		desc, err := scenefile.Load(sceneFile)
		if err != nil {
			return err
		}
		if s, viewCfg, err = desc.Build(); err != nil {
			return err
		}
	}

	view, err := render.NewView(viewCfg)
	if err != nil {
		return err
	}
	w, h := view.Size()
	log.Info().Int("objects", len(s.Objects)).Int("lights", len(s.Lights)).
		Int("width", w).Int("height", h).Msg("rendering")

	start := time.Now()
	img := view.Render(s).Image()
	log.Info().Dur("elapsed", time.Since(start)).Msg("rendered")

	if err := imageio.Save(out, img); err != nil {
		return err
	}
	log.Info().Str("path", out).Msg("saved")

	if thumb > 0 {
		ext := filepath.Ext(out)
		thumbPath := out[:len(out)-len(ext)] + "_thumb" + ext
		if err := imageio.Save(thumbPath, imageio.Thumbnail(img, thumb)); err != nil {
			return err
		}
		log.Info().Str("path", thumbPath).Msg("saved thumbnail")
	}
	return nil
}

func runBatch(configFile string, flags config.Flags) int {
	// Load config
	var cfg config.Config
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			log.Error().Err(err).Msg("config load failed")
			return 1
		}
	}

	// CLI flags override config file
	cfg.Resolve(flags)

	if len(cfg.Scenes) == 0 {
		log.Warn().Msg("no scenes to render")
		return 0
	}
	format, err := imageio.ParseFormat(cfg.Format)
	if err != nil {
		log.Error().Err(err).Msg("bad output format")
		return 1
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Error().Err(err).Msg("create output dir")
		return 1
	}

	log.Info().Int("scenes", len(cfg.Scenes)).Int("workers", cfg.Workers).
		Str("output", cfg.OutputDir).Str("format", string(format)).Msg("batch starting")
	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Format:    format,
		Thumbnail: cfg.Thumbnail,
		Workers:   cfg.Workers,
	}, cfg.Scenes)

	// Count results
	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	log.Info().Dur("elapsed", time.Since(start)).
		Str("rendered", fmt.Sprintf("%d/%d", len(results)-failed, len(results))).Msg("batch done")

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		log.Warn().Err(err).Msg("manifest write failed")
	} else {
		log.Info().Str("path", manifestPath).Msg("manifest written")
	}

	if failed > 0 {
		return 1
	}
	return 0
}
