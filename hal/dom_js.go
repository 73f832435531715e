//go:build js

package hal

import (
	"image"
	"math"
	"strconv"
	"syscall/js"

	"skyline/sky/labels"
)

var document = js.Global().Get("document")

// domOverlay mirrors the overlay into page elements when the page
// provides them.
type domOverlay struct {
	ok        bool
	container js.Value
	clock     js.Value
	date      js.Value
	knob      js.Value
	dialEl    js.Value
	canvas    js.Value
	body      js.Value

	labels map[string]js.Value
	cursor string
	clockS string
	dateS  string
}

func newDOMOverlay() *domOverlay {
	d := &domOverlay{labels: map[string]js.Value{}}
	if !document.Truthy() {
		return d
	}
	byID := func(id string) js.Value { return document.Call("getElementById", id) }
	d.container = byID("star-labels-container")
	d.clock = byID("digital-clock")
	d.date = byID("current-date")
	d.knob = byID("dial-knob")
	d.dialEl = byID("dial-container")
	d.canvas = document.Call("querySelector", "canvas")
	d.body = document.Get("body")
	d.ok = d.container.Truthy()
	return d
}

// apply updates the page. It reports false when the page has no label
// container, in which case the caller draws the overlay itself.
func (d *domOverlay) apply(s Scene) bool {
	if !d.ok {
		return false
	}
	for _, l := range s.Labels {
		el := d.label(l)
		style := el.Get("style")
		if !l.Visible {
			style.Set("display", "none")
			continue
		}
		style.Set("display", "flex")
		style.Set("left", px(l.X))
		style.Set("top", px(l.Y))
		el.Get("classList").Call("toggle", "visible", l.Highlighted)
	}

	if d.clock.Truthy() && d.clockS != s.Readout.Clock {
		d.clockS = s.Readout.Clock
		d.clock.Set("innerText", s.Readout.Clock)
	}
	if d.date.Truthy() && d.dateS != s.Readout.Date {
		d.dateS = s.Readout.Date
		d.date.Set("innerText", s.Readout.Date)
	}
	if d.knob.Truthy() {
		d.knob.Get("style").Set("left", px(s.Readout.KnobX))
		d.knob.Get("style").Set("top", px(s.Readout.KnobY))
	}

	cursor := "default"
	if s.CursorHelp {
		cursor = "help"
	}
	if cursor != d.cursor && d.body.Truthy() {
		d.cursor = cursor
		d.body.Get("style").Set("cursor", cursor)
	}
	return true
}

// dial returns the page's dial-container in canvas pixels. ok is false
// when the page has no overlay or no dial.
func (d *domOverlay) dial() (r image.Rectangle, ok bool) {
	if !d.ok || !d.dialEl.Truthy() {
		return image.Rectangle{}, false
	}
	b := d.dialEl.Call("getBoundingClientRect")
	var ox, oy float64
	if d.canvas.Truthy() {
		c := d.canvas.Call("getBoundingClientRect")
		ox, oy = c.Get("left").Float(), c.Get("top").Float()
	}
	x0 := int(math.Round(b.Get("left").Float() - ox))
	y0 := int(math.Round(b.Get("top").Float() - oy))
	x1 := int(math.Round(b.Get("right").Float() - ox))
	y1 := int(math.Round(b.Get("bottom").Float() - oy))
	r = image.Rect(x0, y0, x1, y1)
	return r, !r.Empty()
}

func (d *domOverlay) label(l labels.Placement) js.Value {
	if el, ok := d.labels[l.Name]; ok {
		return el
	}
	el := document.Call("createElement", "div")
	el.Set("className", "star-label")
	line := document.Call("createElement", "div")
	line.Set("className", "star-line")
	name := document.Call("createElement", "div")
	name.Set("className", "star-text")
	name.Set("textContent", l.Name)
	el.Call("appendChild", line)
	el.Call("appendChild", name)
	d.container.Call("appendChild", el)
	d.labels[l.Name] = el
	return el
}

func px(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 2, 32) + "px"
}
