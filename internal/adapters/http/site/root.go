// Package site handles the embedded dashboard site.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded dashboard site routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Serve the embedded dashboard site at root /
	mux.Handle("/", NewRootHandler())
}

// RootHandler serves the embedded dashboard site at the root path.
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{files: http.FileServer(FS())}
}

func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.files.ServeHTTP(w, r)
}

// HandleRoot handles GET / requests and serves the embedded dashboard site
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	h.ServeHTTP(w, r)
}
