package gallery

import (
	"encoding/json"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"gallery-room/internal/logger"
)

// Handler serves the image files of one directory over HTTP: the photo list as JSON and the
// image bytes. It is the development stand-in for a gallery backend.
type Handler struct {
	dir string
	log *logger.Logger
}

func NewHandler(dir string, log *logger.Logger) *Handler {
	return &Handler{dir: dir, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/photos", h.list)
	r.Get("/photos/{name}", h.photo)
}

// list answers with a bare JSON array of photos whose imageUrl points back at this server.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	photos, err := ScanDir(h.dir)
	if err != nil {
		h.log.Warnf("%v", err)
		http.Error(w, "photos unavailable", http.StatusInternalServerError)
		return
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	for i := range photos {
		u := url.URL{Scheme: scheme, Host: r.Host, Path: "/photos/" + filepath.Base(photos[i].ImageURL)}
		photos[i].ImageURL = u.String()
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(photos); err != nil {
		h.log.Warnf("gallery: encode photos: %v", err)
	}
}

func (h *Handler) photo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if n, err := url.PathUnescape(name); err == nil {
		name = n
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}
	path := filepath.Join(h.dir, name)
	if !isImageFile(path) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}
