package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"planet-renderer/internal/config"
	"planet-renderer/internal/logging"
	"planet-renderer/internal/render"
)

// watchScene re-runs render.Prepare whenever the scene file is written and
// delivers the result on the returned channel. The parent directory is
// watched so editors that save by rename are seen too.
func watchScene(cfg config.Config) (<-chan *render.Setup, func() error, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	target := filepath.Clean(cfg.SceneFile)
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return nil, nil, err
	}

	out := make(chan *render.Setup, 1)
	log := logging.Logger()
	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				setup, err := render.Prepare(cfg)
				if err != nil {
					log.Warn("scene reload failed", "scene", target, "err", err)
					continue
				}
				log.Info("scene reloaded", "scene", target, "objects", len(setup.Scene.Objects))
				// Drop a pending reload nobody picked up yet.
				select {
				case <-out:
				default:
				}
				out <- setup
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("scene watcher", "err", err)
			}
		}
	}()
	return out, w.Close, nil
}
