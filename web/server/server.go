package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/job"
	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

//go:embed static
var staticFiles embed.FS

var logger = log.New("server")

// Config configures the web server
type Config struct {
	Addr    string // Listen address, "" = all interfaces
	Port    int    // Listen port
	Workers int    // Tile goroutines per render, 0 = CPU count
	Scene   string // Built-in scene to render, "" = random scene

	// Render overrides the renderer, mainly for tests
	Render job.RenderFunc
}

// Server serves the render page and runs render jobs on a single worker host
type Server struct {
	config     Config
	host       *job.WorkerHost
	mux        *http.ServeMux
	httpServer *http.Server
}

// NewServer creates a new web server and starts its worker host
func NewServer(config Config) *Server {
	render := config.Render
	if render == nil {
		render = job.NewRenderFunc(renderer.Options{
			SceneName:  config.Scene,
			NumWorkers: config.Workers,
		})
	}

	s := &Server{
		config: config,
		host:   job.NewWorkerHost(render),
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

// routes registers every handler on the server mux
func (s *Server) routes() {
	// Serve static files
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // embedded directory always exists
	}
	s.mux.Handle("/", http.FileServer(http.FS(static)))

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/render.png", s.handleRenderPNG)
	s.mux.HandleFunc("/api/render-config", s.handleRenderConfig)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Addr, s.config.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Noticef("Starting web server on http://localhost:%d", s.config.Port)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Close stops the HTTP listener and the worker host
func (s *Server) Close() error {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			logger.Warningf("Shutdown: %v", err)
		}
	}
	return s.host.Close()
}

// sceneName returns the configured scene, defaulting to the random scene
func (s *Server) sceneName() string {
	if s.config.Scene == "" {
		return scene.DefaultSceneName
	}
	return s.config.Scene
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRenderConfig returns the form defaults and validation limits
func (s *Server) handleRenderConfig(w http.ResponseWriter, r *http.Request) {
	sceneObj, err := scene.New(s.sceneName(), scene.DefaultSeed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	config := sceneObj.SamplingConfig

	response := map[string]interface{}{
		"scene": sceneObj.Name,
		"busy":  s.host.Busy(),
		"defaults": job.RenderRequest{
			ImageHeight:     config.Height,
			ImageWidth:      config.Width,
			SamplesPerPixel: config.SamplesPerPixel,
			MaxDepth:        config.MaxDepth,
		},
		"limits": map[string]interface{}{
			"image_height":      map[string]int{"min": 1, "max": maxDimension},
			"image_width":       map[string]int{"min": 1, "max": maxDimension},
			"samples_per_pixel": map[string]int{"min": 1, "max": maxSamples},
			"max_depth":         map[string]int{"min": 1, "max": maxDepth},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("Failed to write response: %v", err)
	}
}

// writeError writes a JSON error body
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
