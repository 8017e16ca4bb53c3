package mailtemplate

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// ReloadCallback is called after a watcher-driven change.
// kind is one of "reloaded", "reset".
type ReloadCallback func(kind string, name string)

// Watch observes the override directory and reloads templates until ctx is
// cancelled. It returns immediately when no directory is configured.
//
// A written or created file replaces its template; a removed or renamed file
// restores the embedded default. Files that fail to parse are logged and the
// previous template stays active.
func (s *Set) Watch(ctx context.Context, cb ReloadCallback) error {
	if s.dir == "" {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(s.dir); err != nil {
		return err
	}

	s.logger.Info("templates watcher: started", slog.String("dir", s.dir))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("templates watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, ok := templateName(ev.Name)
			if !ok {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := os.ReadFile(ev.Name)
				if readErr != nil {
					s.logger.Warn("templates watcher: read failed", slog.String("template", name), slog.String("error", readErr.Error()))
					continue
				}
				changed, reloadErr := s.Reload(name, data)
				if reloadErr != nil {
					s.logger.Warn("templates watcher: keeping previous template", slog.String("template", name), slog.String("error", reloadErr.Error()))
					continue
				}
				if !changed {
					continue
				}
				s.logger.Info("templates watcher: reloaded", slog.String("template", name))
				if cb != nil {
					cb("reloaded", name)
				}

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				if resetErr := s.Reset(name); resetErr != nil {
					s.logger.Warn("templates watcher: reset failed", slog.String("template", name), slog.String("error", resetErr.Error()))
					continue
				}
				s.logger.Info("templates watcher: restored default", slog.String("template", name))
				if cb != nil {
					cb("reset", name)
				}
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("templates watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// templateName maps an event path to a known template name.
func templateName(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ext) {
		return "", false
	}
	name := strings.TrimSuffix(base, ext)
	return name, known(name)
}
