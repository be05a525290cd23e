package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"SolarSystem/internal/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads path whenever it is written and publishes each valid config
// on the returned channel. Invalid files are logged and skipped. The channel
// is closed when ctx is done.
//
// The parent directory is watched rather than the file itself so editors that
// replace the file on save keep working.
func Watch(ctx context.Context, path string) (<-chan Config, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	out := make(chan Config, 1)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := reload(abs)
				if err != nil {
					logger.Log.Warn("Ignoring config change", zap.String("path", abs), zap.Error(err))
					continue
				}
				logger.Log.Info("Config reloaded", zap.String("path", abs))
				publish(out, cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Log.Error("Config watcher error", zap.Error(err))
			}
		}
	}()
	return out, nil
}

func reload(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// publish replaces any config still waiting in out so the reader only ever
// sees the latest one.
func publish(out chan Config, cfg Config) {
	select {
	case <-out:
	default:
	}
	out <- cfg
}
