// Package assets serves the built single-page app.
package assets

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

const indexFile = "index.html"

// SPA serves files from a build directory and falls back to index.html for
// client-side routes.
type SPA struct {
	fsys  fs.FS
	files http.Handler
}

// NewSPA serves the directory at dir, typically web/dist.
func NewSPA(dir string) *SPA {
	return NewSPAFromFS(os.DirFS(dir))
}

func NewSPAFromFS(fsys fs.FS) *SPA {
	return &SPA{
		fsys:  fsys,
		files: http.FileServer(http.FS(fsys)),
	}
}

// Available reports whether the build contains an index page.
func (s *SPA) Available() bool {
	info, err := fs.Stat(s.fsys, indexFile)
	return err == nil && !info.IsDir()
}

func (s *SPA) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" || name == indexFile {
		s.serveIndex(w, r)
		return
	}

	info, err := fs.Stat(s.fsys, name)
	switch {
	case err == nil && !info.IsDir():
		s.files.ServeHTTP(w, r)
	case errors.Is(err, fs.ErrNotExist) && path.Ext(name) == "":
		s.serveIndex(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *SPA) serveIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(s.fsys, indexFile)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}
