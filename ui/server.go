package ui

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server previews a generated report directory over HTTP. The pages are
// self-contained, so this is a plain file server with the schema overview
// as the landing page.
type Server struct {
	router *chi.Mux
	dir    string
	port   int
}

// NewServer creates a preview server rooted at the report directory.
func NewServer(dir string, port int) *Server {
	s := &Server{
		router: chi.NewRouter(),
		dir:    dir,
		port:   port,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	fileServer := http.FileServer(http.Dir(s.dir))
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/schema.html", http.StatusFound)
	})
	s.router.Handle("/*", fileServer)
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("[Server] Serving report from %s on %s", s.dir, addr)
	return http.ListenAndServe(addr, s.router)
}
