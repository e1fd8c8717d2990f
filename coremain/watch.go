package coremain

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDelay = 200 * time.Millisecond

// watch runs cfg, then reruns the scenarios every time one of files is
// written. A config that fails to load is logged and the watch goes on.
func (m *Dlist) watch(closeSignal <-chan struct{}, load loadFunc, cfg *Config, files []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-closeSignal:
			cancel()
		case <-ctx.Done():
		}
	}()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to init file watcher, %w", err)
	}
	defer w.Close()

	// Editors often replace files instead of writing them in place, so the
	// directories are watched and events are filtered by file name.
	watched := make(map[string]struct{})
	dirs := make(map[string]struct{})
	addFiles := func(files []string) error {
		for _, f := range files {
			abs, err := filepath.Abs(f)
			if err != nil {
				return err
			}
			watched[abs] = struct{}{}
			dir := filepath.Dir(abs)
			if _, ok := dirs[dir]; ok {
				continue
			}
			if err := w.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s, %w", dir, err)
			}
			dirs[dir] = struct{}{}
		}
		return nil
	}
	if err := addFiles(files); err != nil {
		return err
	}

	rerun := func(cfg *Config) {
		if err := m.runAll(ctx, cfg); err != nil {
			m.logger.Error("scenario run failed", zap.Error(err))
		}
	}
	rerun(cfg)

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			m.logger.Warn("file watcher error", zap.Error(err))
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(e.Name)
			if err != nil {
				continue
			}
			if _, hit := watched[abs]; !hit || !e.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			m.logger.Debug("config file changed", zap.String("file", e.Name), zap.Stringer("op", e.Op))
			timer.Reset(reloadDelay)
		case <-timer.C:
			cfg, files, err := load()
			if err != nil {
				m.logger.Error("failed to reload config", zap.Error(err))
				continue
			}
			if err := addFiles(files); err != nil {
				m.logger.Error("failed to watch config files", zap.Error(err))
			}
			m.logger.Info("config reloaded, rerunning scenarios", zap.Int("scenarios", len(cfg.Scenarios)))
			rerun(cfg)
		}
	}
}
