package main

import (
	"context"
	"flag"
	"os"
	"time"

	"SolarSystem/internal/behaviour"
	"SolarSystem/internal/config"
	"SolarSystem/internal/control"
	"SolarSystem/internal/engine"
	"SolarSystem/internal/logger"
	"SolarSystem/internal/mesh"
	"SolarSystem/internal/scene"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "solarsystem.yaml", "path to the YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging and wireframe rendering")
	writeConfig := flag.Bool("write-config", false, "write the effective config to -config and exit")
	flag.Parse()

	logger.Init()
	cfg, found, err := config.Load(*configPath)
	if err != nil {
		logger.Log.Error("Invalid config, using defaults", zap.Error(err))
	} else if !found {
		logger.Log.Info("No config file, using defaults", zap.String("path", *configPath))
	}
	if cfg.Debug || *debug {
		logger.InitWithLevel(true)
	}
	defer logger.Sync()

	if *writeConfig {
		if err := config.Save(*configPath, cfg); err != nil {
			logger.Log.Error("Could not write config", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Log.Info("Config written", zap.String("path", *configPath))
		return
	}

	if err := run(cfg, *configPath, found, cfg.Debug || *debug); err != nil {
		logger.Log.Error("Solar system exited", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, configPath string, watch, debug bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache, err := mesh.NewCache(16)
	if err != nil {
		return err
	}
	solar := scene.New(cfg, cache)

	gopher := engine.NewGopher(cfg, solar)
	gopher.SetDebugMode(debug)

	if watch {
		updates, err := config.Watch(ctx, configPath)
		if err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		} else {
			gopher.Behaviours.Add(&behaviour.ConfigReload{Updates: updates, Scene: solar})
		}
	}

	if cfg.Control.Enabled {
		server := control.NewServer(32)
		go func() {
			if err := server.ListenAndServe(ctx, cfg.Control.Addr); err != nil {
				logger.Log.Error("Control panel stopped", zap.Error(err))
			}
		}()
		gopher.Behaviours.Add(&behaviour.CommandDrain{Commands: server.Commands(), Scene: solar})
		gopher.Behaviours.Add(&behaviour.Telemetry{Publisher: server, Scene: solar, Interval: 100 * time.Millisecond})
	}

	logger.Log.Info("Solar system starting",
		zap.Int32("width", cfg.Window.Width),
		zap.Int32("height", cfg.Window.Height),
		zap.Bool("control", cfg.Control.Enabled))
	return gopher.Render()
}
