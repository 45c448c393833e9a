package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/job"
)

// Parameter limits for render requests
const (
	maxDimension = 2000
	maxSamples   = 10000
	maxDepth     = 1000
	maxBodyBytes = 1 << 16
)

// errRenderFailed marks a job that ran but reported an error
var errRenderFailed = errors.New("render failed")

// handleRender accepts a JSON RenderRequest and replies with a JSON RenderResult
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req job.RenderRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	if err := validateRenderRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	result, status, err := s.runJob(r, req)
	if err != nil && !errors.Is(err, errRenderFailed) {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, status, result)
}

// handleRenderPNG renders from query parameters and replies with a PNG, optionally scaled
func (s *Server) handleRenderPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	scale, err := parseFloatParam(r.URL.Query(), "scale", 1.0, 0.1, 4.0)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	result, status, err := s.runJob(r, req)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	img, err := imageio.FromPixels(result.Image, result.Width, result.Height)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, imageio.Scale(img, scale), imageio.PNG); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Time-Taken", strconv.FormatFloat(result.TimeTaken, 'f', 2, 64))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// runJob posts req to the worker host and waits for the reply or the client
// to go away. The returned status is the HTTP status to reply with.
func (s *Server) runJob(r *http.Request, req job.RenderRequest) (job.RenderResult, int, error) {
	reply, err := s.host.Post(req)
	switch {
	case errors.Is(err, job.ErrBusy):
		return job.RenderResult{}, http.StatusConflict, errors.New("a render is already in progress")
	case err != nil:
		return job.RenderResult{}, http.StatusServiceUnavailable, err
	}

	select {
	case result := <-reply:
		if result.Error != "" {
			logger.Warningf("Render %dx%d failed: %s", req.ImageWidth, req.ImageHeight, result.Error)
			return result, http.StatusInternalServerError, fmt.Errorf("%w: %s", errRenderFailed, result.Error)
		}
		logger.Infof("Rendered %dx%d in %.2fms", req.ImageWidth, req.ImageHeight, result.TimeTaken)
		return result, http.StatusOK, nil
	case <-r.Context().Done():
		// The host finishes the job on its own and becomes idle again
		return job.RenderResult{}, http.StatusServiceUnavailable, r.Context().Err()
	}
}

// parseRenderRequest parses render parameters from URL query values
func parseRenderRequest(values url.Values) (job.RenderRequest, error) {
	var req job.RenderRequest
	var err error

	if req.ImageHeight, err = parseIntParam(values, "image_height", 225, 1, maxDimension); err != nil {
		return req, err
	}
	if req.ImageWidth, err = parseIntParam(values, "image_width", 400, 1, maxDimension); err != nil {
		return req, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "samples_per_pixel", 10, 1, maxSamples); err != nil {
		return req, err
	}
	if req.MaxDepth, err = parseIntParam(values, "max_depth", 10, 1, maxDepth); err != nil {
		return req, err
	}

	// Performance warning
	if req.ImageWidth*req.ImageHeight > 800*600 && req.SamplesPerPixel > 100 {
		logger.Warning("Large image with high samples may render slowly")
	}

	return req, nil
}

// validateRenderRequest applies the query parameter limits to a decoded request
func validateRenderRequest(req job.RenderRequest) error {
	checks := []struct {
		key      string
		value    int
		min, max int
	}{
		{"image_height", req.ImageHeight, 1, maxDimension},
		{"image_width", req.ImageWidth, 1, maxDimension},
		{"samples_per_pixel", req.SamplesPerPixel, 1, maxSamples},
		{"max_depth", req.MaxDepth, 1, maxDepth},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return fmt.Errorf("%s must be between %d and %d, got: %d", c.key, c.min, c.max, c.value)
		}
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
