package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/starford/portfolio/internal/apperr"
)

const indexFile = "index.html"

// SPA serves the bundled frontend from dir. Existing files are served as is;
// any other path gets the entry document so the client router can resolve it.
// When the bundle is missing every request answers a JSON 404.
func SPA(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			notFound(w, r, "Route not found")
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
			http.ServeFile(w, r, name)
			return
		}

		index, err := entryDocument(dir)
		if errors.Is(err, apperr.ErrNotFound) {
			notFound(w, r, "Frontend bundle not found")
			return
		}
		if err != nil {
			slog.Error("frontend bundle unreadable", slog.String("dir", dir), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, failure("Frontend bundle unavailable", nil, false))
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, index)
	})
}

// entryDocument locates the bundle's index.html. A missing bundle is
// apperr.ErrNotFound.
func entryDocument(dir string) (string, error) {
	index := filepath.Join(dir, indexFile)
	fi, err := os.Stat(index)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("frontend bundle %s: %w", dir, apperr.ErrNotFound)
	case err != nil:
		return "", fmt.Errorf("frontend bundle %s: %w", dir, err)
	case fi.IsDir():
		return "", fmt.Errorf("frontend bundle %s: index is a directory: %w", dir, apperr.ErrNotFound)
	}
	return index, nil
}

// DevFallback answers non-API paths while the frontend runs on its own dev server.
func DevFallback() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		notFound(w, r, "Route not found")
	})
}
