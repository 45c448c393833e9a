//go:build js && wasm

// Command wasm runs the render page controller inside the browser. Build with
// GOOS=js GOARCH=wasm; the page must load wasm_exec.js first.
package main

import (
	"errors"
	"syscall/js"

	"github.com/df07/go-weekend-raytracer/pkg/job"
	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/ui"
)

var logger = log.New("wasm")

// document implements ui.Document on the browser DOM
type document struct {
	doc js.Value
}

func (d document) element(id string) js.Value {
	return d.doc.Call("getElementById", id)
}

func (d document) Value(id string) string {
	return d.element(id).Get("value").String()
}

func (d document) SetText(id, text string) {
	d.element(id).Set("innerText", text)
}

func (d document) SetDisabled(id string, disabled bool) {
	d.element(id).Set("disabled", disabled)
}

// canvas implements ui.Canvas on a 2D canvas element
type canvas struct {
	el js.Value
}

func (c canvas) context() js.Value {
	return c.el.Call("getContext", "2d")
}

func (c canvas) Resize(width, height int) {
	c.el.Set("width", width)
	c.el.Set("height", height)
}

func (c canvas) Clear() {
	c.context().Call("clearRect", 0, 0, c.el.Get("width"), c.el.Get("height"))
}

func (c canvas) PutImageData(pixels []byte, width, height int) error {
	if len(pixels) != width*height*4 {
		return errors.New("pixel buffer does not match canvas size")
	}
	data := js.Global().Get("Uint8ClampedArray").New(len(pixels))
	js.CopyBytesToJS(data, pixels)
	image := js.Global().Get("ImageData").New(data, width, height)
	c.context().Call("putImageData", image, 0, 0)
	return nil
}

// newDispatcher picks the inline variant for ?variant=inline and the worker
// host otherwise
func newDispatcher(render job.RenderFunc) job.Dispatcher {
	params := js.Global().Get("URLSearchParams").New(js.Global().Get("location").Get("search"))
	if variant := params.Call("get", "variant"); variant.Truthy() && variant.String() == "inline" {
		logger.Notice("Rendering inline on the click goroutine")
		return job.NewInlineDispatcher(render)
	}
	logger.Notice("Rendering on the worker host")
	return job.NewWorkerDispatcher(job.NewWorkerHost(render))
}

func main() {
	doc := document{doc: js.Global().Get("document")}
	cv := canvas{el: doc.element(ui.CanvasID)}

	// The browser has a single thread, so tiles render sequentially
	render := job.NewRenderFunc(renderer.Options{NumWorkers: 1})
	controller := ui.NewController(doc, cv, newDispatcher(render))
	controller.Subscribe(func(s ui.State) {
		logger.Debugf("state: rendering=%t status=%q", s.Rendering, s.Status)
	})
	controller.Init()

	onClick := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		// Event callbacks must not block the JS event loop
		go controller.HandleClick()
		return nil
	})
	doc.element(ui.GenerateButtonID).Call("addEventListener", "click", onClick)

	// Keep the Go runtime alive for the page lifetime
	select {}
}
