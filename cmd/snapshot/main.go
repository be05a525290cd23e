package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"SolarSystem/internal/config"
	"SolarSystem/internal/logger"
	"SolarSystem/internal/mesh"
	"SolarSystem/internal/raster"
	"SolarSystem/internal/renderer"
	"SolarSystem/internal/scene"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
)

// settleFrames is how many frames an attached camera gets to approach its
// body before the picture is taken.
const settleFrames = 120

type job struct {
	index  int
	time   float64
	target scene.CameraTarget
}

func main() {
	configPath := flag.String("config", "solarsystem.yaml", "path to the YAML config file")
	start := flag.Float64("time", 0, "animation time of the first frame, in seconds")
	frames := flag.Int("frames", 1, "number of frames to render")
	fps := flag.Float64("fps", 30, "frame rate of a multi-frame sequence")
	target := flag.String("target", "solar_system", "camera target: solar_system or a body name")
	out := flag.String("out", "", "output directory (overrides the config)")
	flag.Parse()

	logger.Init()
	defer logger.Sync()

	cfg, found, err := config.Load(*configPath)
	if err != nil {
		logger.Log.Fatal("Invalid config", zap.Error(err))
	}
	if !found {
		logger.Log.Info("No config file, using defaults", zap.String("path", *configPath))
	}
	if *out != "" {
		cfg.Snapshot.OutputDir = *out
	}

	t, err := scene.ParseTarget(*target)
	if err != nil {
		logger.Log.Fatal("Bad target", zap.Error(err))
	}
	if *frames < 1 || *fps <= 0 {
		logger.Log.Fatal("frames and fps must be positive", zap.Int("frames", *frames), zap.Float64("fps", *fps))
	}

	cache, err := mesh.NewCache(16)
	if err != nil {
		logger.Log.Fatal("Mesh cache", zap.Error(err))
	}

	pool := pond.NewPool(cfg.Snapshot.Workers)
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for i := 0; i < *frames; i++ {
		j := job{index: i, time: *start + float64(i)/(*fps), target: t}
		group.SubmitErr(func() error {
			return renderFrame(cfg, cache, j)
		})
	}
	if err := group.Wait(); err != nil {
		logger.Log.Error("Snapshot failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Log.Info("Snapshots written",
		zap.Int("frames", *frames),
		zap.String("dir", cfg.Snapshot.OutputDir))
}

// renderFrame draws one frame with its own scene and backend, so frames can
// be rendered concurrently.
func renderFrame(cfg config.Config, cache *mesh.Cache, j job) error {
	factor := cfg.Snapshot.Supersample
	w, h := cfg.Snapshot.Width*factor, cfg.Snapshot.Height*factor

	solar := scene.New(cfg, cache)
	backend := raster.NewBackend(w, h)
	backend.Workers = 1
	state := renderer.NewProgramState(w, h)

	at := time.Duration(j.time * float64(time.Second))
	state.Advance(at)
	solar.Display(backend, state)

	if j.target.Kind == scene.TargetBody {
		solar.Camera.SetTarget(j.target)
		// The clock stays put so the camera converges on a still scene.
		for i := 0; i < settleFrames; i++ {
			state.Advance(at)
			solar.Display(backend, state)
		}
	}

	img := raster.Downsample(backend.FrameBuffer().Image(), factor)
	path := filepath.Join(cfg.Snapshot.OutputDir, fmt.Sprintf("%s_%04d.webp", j.target, j.index))
	if err := raster.SaveWebP(path, img); err != nil {
		return fmt.Errorf("frame %d: %w", j.index, err)
	}
	logger.Log.Debug("Frame written",
		zap.String("path", path),
		zap.Float64("time", j.time),
		zap.Int("triangles", backend.Stats.Triangles))
	return nil
}
