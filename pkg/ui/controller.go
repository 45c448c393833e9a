// Package ui wires the render form to a job dispatcher and a canvas. It talks
// to the page only through the Document and Canvas interfaces, so the same
// controller drives the browser binding and the tests.
package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/df07/go-weekend-raytracer/pkg/job"
	"github.com/df07/go-weekend-raytracer/pkg/log"
)

// Element IDs of the render page
const (
	ImageHeightID     = "image_height"
	ImageWidthID      = "image_width"
	SamplesPerPixelID = "samples_per_pixel"
	MaxDepthID        = "max_depth"
	CanvasID          = "canvas"
	TimeTakenID       = "time_taken"
	GenerateButtonID  = "generate_button"
)

// Status texts shown in the time_taken element
const (
	StatusRendering = "Rendering in progress..."
	statusTimeTaken = "Time taken: %.2fms"
	statusFailed    = "Render failed: %s"
	statusInvalid   = "Invalid input: %s must be a positive integer"
)

var (
	// ErrInvalidInput is returned when a form field is not a positive integer.
	ErrInvalidInput = errors.New("ui: invalid input")

	// ErrRenderInFlight is returned when a click arrives while a render is running.
	ErrRenderInFlight = errors.New("ui: render already in progress")
)

var logger = log.New("ui")

// InputError reports a form field that is not a positive integer
type InputError struct {
	Field string
	Value string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %s = %q is not a positive integer", ErrInvalidInput, e.Field, e.Value)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// Document is the subset of the page the controller reads and writes
type Document interface {
	Value(id string) string
	SetText(id, text string)
	SetDisabled(id string, disabled bool)
}

// Canvas is the drawing surface the rendered image is painted on
type Canvas interface {
	Resize(width, height int)
	Clear()
	PutImageData(pixels []byte, width, height int) error
}

// State is a snapshot of the controller, pushed to subscribers on every change
type State struct {
	Rendering bool
	Status    string
	Request   job.RenderRequest
	TimeTaken float64 // Milliseconds of the last completed render
	Err       string  // Last failure, cleared when a render starts
}

// Controller handles clicks on the generate button
type Controller struct {
	doc        Document
	canvas     Canvas
	dispatcher job.Dispatcher

	mu          sync.Mutex
	state       State
	inFlight    bool // Claimed by a click until its result or failure is handled
	subscribers []func(State)
}

// NewController creates a controller; call Init before the first click
func NewController(doc Document, canvas Canvas, dispatcher job.Dispatcher) *Controller {
	return &Controller{doc: doc, canvas: canvas, dispatcher: dispatcher}
}

// Subscribe registers fn to receive every state change
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	c.subscribers = append(c.subscribers, fn)
	c.mu.Unlock()
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Init enables the generate button
func (c *Controller) Init() {
	c.doc.SetDisabled(GenerateButtonID, false)
	c.update(func(s *State) { *s = State{} })
}

// HandleClick reads the form, prepares the canvas and dispatches a render.
// The button stays disabled until the result arrives.
func (c *Controller) HandleClick() error {
	if err := c.tryBegin(); err != nil {
		return err
	}

	req, err := c.readRequest()
	if err != nil {
		status := fmt.Sprintf(statusInvalid, err.Field)
		c.doc.SetText(TimeTakenID, status)
		c.update(func(s *State) {
			c.inFlight = false
			s.Status = status
			s.Err = err.Error()
		})
		return err
	}

	c.canvas.Resize(req.ImageWidth, req.ImageHeight)
	c.canvas.Clear()
	c.doc.SetDisabled(GenerateButtonID, true)
	c.doc.SetText(TimeTakenID, StatusRendering)
	c.update(func(s *State) {
		s.Rendering = true
		s.Status = StatusRendering
		s.Request = req
		s.Err = ""
	})
	logger.Infof("Dispatching render %dx%d", req.ImageWidth, req.ImageHeight)

	// This click owns the only slot, so a rejection means nothing of ours is running
	if err := c.dispatcher.Dispatch(req, c.handleResult); err != nil {
		c.fail(err.Error())
		return err
	}
	return nil
}

// tryBegin claims the render slot, or returns ErrRenderInFlight when another
// click holds it
func (c *Controller) tryBegin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return ErrRenderInFlight
	}
	c.inFlight = true
	return nil
}

// handleResult paints a finished render and re-enables the button
func (c *Controller) handleResult(result job.RenderResult) {
	if result.Error != "" {
		c.fail(result.Error)
		return
	}

	if err := c.canvas.PutImageData(result.Image, result.Width, result.Height); err != nil {
		c.fail(err.Error())
		return
	}

	status := fmt.Sprintf(statusTimeTaken, result.TimeTaken)
	c.doc.SetText(TimeTakenID, status)
	c.doc.SetDisabled(GenerateButtonID, false)
	c.update(func(s *State) {
		c.inFlight = false
		s.Rendering = false
		s.Status = status
		s.TimeTaken = result.TimeTaken
	})
}

// fail reports a render failure and re-enables the button
func (c *Controller) fail(reason string) {
	logger.Warningf("Render failed: %s", reason)

	status := fmt.Sprintf(statusFailed, reason)
	c.doc.SetText(TimeTakenID, status)
	c.doc.SetDisabled(GenerateButtonID, false)
	c.update(func(s *State) {
		c.inFlight = false
		s.Rendering = false
		s.Status = status
		s.Err = reason
	})
}

// update applies fn to the state under the lock and notifies subscribers
// outside it
func (c *Controller) update(fn func(*State)) {
	c.mu.Lock()
	fn(&c.state)
	snapshot := c.state
	subscribers := append([]func(State){}, c.subscribers...)
	c.mu.Unlock()

	for _, sub := range subscribers {
		sub(snapshot)
	}
}

// readRequest parses the four numeric form fields
func (c *Controller) readRequest() (job.RenderRequest, *InputError) {
	var req job.RenderRequest
	fields := []struct {
		id  string
		dst *int
	}{
		{ImageHeightID, &req.ImageHeight},
		{ImageWidthID, &req.ImageWidth},
		{SamplesPerPixelID, &req.SamplesPerPixel},
		{MaxDepthID, &req.MaxDepth},
	}

	for _, f := range fields {
		raw := strings.TrimSpace(c.doc.Value(f.id))
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return job.RenderRequest{}, &InputError{Field: f.id, Value: raw}
		}
		*f.dst = v
	}
	return req, nil
}
