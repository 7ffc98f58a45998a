package blendrules

import (
	"errors"
	"log/slog"

	"github.com/milk9111/camrig/camera"
	"github.com/milk9111/camrig/prefabs"
)

// Build loads the blender yaml at blendsPath and wraps it in the tengo script
// at scriptPath. An empty scriptPath uses the script named by the yaml, if any.
func Build(blendsPath, scriptPath string, logger *slog.Logger) (camera.BlendLookup, error) {
	var lookup camera.BlendLookup = camera.CutLookup
	if blendsPath != "" {
		spec, err := prefabs.LoadBlenderSpec(blendsPath)
		if err != nil {
			return nil, err
		}
		settings, err := NewSettings(spec)
		if err != nil {
			return nil, err
		}
		lookup = settings
		if scriptPath == "" {
			scriptPath = spec.Script
		}
	}

	if scriptPath == "" {
		return lookup, nil
	}
	return LoadScript(scriptPath, lookup, logger)
}

// Reloader is a camera.BlendLookup that rebuilds itself when its files change.
// Poll must be called from the goroutine that uses the lookup.
type Reloader struct {
	BlendsPath string
	ScriptPath string

	logger  *slog.Logger
	current camera.BlendLookup
	watcher *prefabs.Watcher
}

func NewReloader(blendsPath, scriptPath string, logger *slog.Logger) (*Reloader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Reloader{BlendsPath: blendsPath, ScriptPath: scriptPath, logger: logger}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reloader) LookupBlend(outgoing, incoming camera.Camera) camera.BlendDefinition {
	return r.current.LookupBlend(outgoing, incoming)
}

// Current returns the lookup built by the last successful reload.
func (r *Reloader) Current() camera.BlendLookup {
	return r.current
}

// Reload rebuilds the lookup. On failure the previous lookup stays in use.
func (r *Reloader) Reload() error {
	lookup, err := Build(r.BlendsPath, r.ScriptPath, r.logger)
	if err != nil {
		return err
	}
	r.current = lookup
	return nil
}

// Watch starts watching dirs for yaml and tengo changes.
func (r *Reloader) Watch(dirs ...string) error {
	if r.watcher != nil {
		return errors.New("blendrules: already watching")
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	r.watcher = w
	return nil
}

// Poll drains pending file changes without blocking and reloads once if any
// arrived. It reports whether the lookup was replaced.
func (r *Reloader) Poll() (bool, error) {
	if r.watcher == nil {
		return false, nil
	}

	var changed []string
	var watchErr error
drain:
	for {
		select {
		case name, ok := <-r.watcher.Events:
			if !ok {
				break drain
			}
			changed = append(changed, name)
		case err, ok := <-r.watcher.Errors:
			if ok && watchErr == nil {
				watchErr = err
			}
		default:
			break drain
		}
	}

	if len(changed) == 0 {
		return false, watchErr
	}
	if err := r.Reload(); err != nil {
		r.logger.Warn("blend rules reload failed", "files", changed, "err", err)
		return false, errors.Join(watchErr, err)
	}
	r.logger.Info("blend rules reloaded", "files", changed)
	return true, watchErr
}

func (r *Reloader) Close() error {
	if r.watcher == nil {
		return nil
	}
	err := r.watcher.Close()
	r.watcher = nil
	return err
}
