package assets

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testBuild() fstest.MapFS {
	return fstest.MapFS{
		"index.html":                {Data: []byte("<!doctype html><div id=app></div>")},
		"assets/index-4f9a1c2b.js":  {Data: []byte("console.log('tips')")},
		"assets/index-77aa00ff.css": {Data: []byte("body{}")},
	}
}

func TestSPA_ServeHTTP(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{name: "root", path: "/", wantCode: http.StatusOK, wantBody: "<!doctype html><div id=app></div>"},
		{name: "index", path: "/index.html", wantCode: http.StatusOK, wantBody: "<!doctype html><div id=app></div>"},
		{name: "asset", path: "/assets/index-4f9a1c2b.js", wantCode: http.StatusOK, wantBody: "console.log('tips')"},
		{name: "client route", path: "/saved", wantCode: http.StatusOK, wantBody: "<!doctype html><div id=app></div>"},
		{name: "missing asset", path: "/assets/gone-12345678.js", wantCode: http.StatusNotFound},
		{name: "unknown api", path: "/api/nope", wantCode: http.StatusNotFound},
		{name: "traversal", path: "/../outside.txt", wantCode: http.StatusNotFound},
	}

	spa := NewSPAFromFS(testBuild())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			spa.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rr.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rr.Code)
			}
			if tt.wantBody != "" && rr.Body.String() != tt.wantBody {
				t.Fatalf("expected body %q, got %q", tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestSPA_Available(t *testing.T) {
	if !NewSPAFromFS(testBuild()).Available() {
		t.Fatal("expected build with index.html to be available")
	}
	if NewSPAFromFS(fstest.MapFS{}).Available() {
		t.Fatal("expected empty build to be unavailable")
	}
}

func TestNewSPA_Directory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("home"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	spa := NewSPA(dir)
	rr := httptest.NewRecorder()
	spa.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/history", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "home" {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
}
