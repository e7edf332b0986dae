package batch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"whitted-renderer/internal/imageio"
	"whitted-renderer/internal/render"
	"whitted-renderer/internal/scenefile"
)

// Config holds the shared settings for a batch run.
type Config struct {
	OutputDir string
	Format    imageio.Format
	Thumbnail int // longest side of an extra thumbnail; 0 disables
	Workers   int

	// ProgressInterval is how often progress is logged; 0 means 2s.
	ProgressInterval time.Duration
}

// Result holds the outcome of rendering one scene file.
type Result struct {
	Scene     string        `json:"scene"`
	Image     string        `json:"image,omitempty"`
	Thumbnail string        `json:"thumbnail,omitempty"`
	Width     int           `json:"width,omitempty"`
	Height    int           `json:"height,omitempty"`
	Elapsed   time.Duration `json:"elapsed_ns,omitempty"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// Run renders every scene file using a worker pool. Each image is still a
// single sequential render; only whole scenes run in parallel.
func Run(cfg Config, scenes []string) []Result {
	total := len(scenes)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	interval := cfg.ProgressInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	stems := outputStems(scenes)
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info().Int64("done", p).Int("total", total).
						Float64("scenes_per_sec", rate).Msg("batch progress")
				}
			}
		}
	}()

	// Worker pool
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = processScene(cfg, scenes[idx], stems[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range scenes {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

// outputStems names each scene's output files after its base name. A base
// name seen earlier in the list gets a _2, _3, ... suffix so no two scenes
// share an output path.
func outputStems(scenes []string) []string {
	stems := make([]string, len(scenes))
	used := make(map[string]bool, len(scenes))
	for i, path := range scenes {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		stem := base
		for n := 2; used[stem]; n++ {
			stem = fmt.Sprintf("%s_%d", base, n)
		}
		used[stem] = true
		stems[i] = stem
	}
	return stems
}

func processScene(cfg Config, path, stem string) Result {
	res := Result{Scene: path}
	fail := func(err error) Result {
		res.Error = err.Error()
		log.Warn().Err(err).Str("scene", path).Msg("scene failed")
		return res
	}

	desc, err := scenefile.Load(path)
	if err != nil {
		return fail(err)
	}
	s, viewCfg, err := desc.Build()
	if err != nil {
		return fail(err)
	}
	view, err := render.NewView(viewCfg)
	if err != nil {
		return fail(err)
	}

	start := time.Now()
	img := view.Render(s).Image()
	res.Elapsed = time.Since(start)
	res.Width, res.Height = view.Size()

	outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s.%s", stem, cfg.Format))
	if err := imageio.Save(outPath, img); err != nil {
		return fail(err)
	}
	res.Image = outPath

	if cfg.Thumbnail > 0 {
		thumbPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_thumb.%s", stem, cfg.Format))
		if err := imageio.Save(thumbPath, imageio.Thumbnail(img, cfg.Thumbnail)); err != nil {
			return fail(err)
		}
		res.Thumbnail = thumbPath
	}

	log.Debug().Str("scene", path).Str("image", outPath).
		Dur("elapsed", res.Elapsed).Msg("scene rendered")
	res.Success = true
	return res
}
