//go:build !js

package hal

import "image"

type domOverlay struct{}

func newDOMOverlay() *domOverlay { return &domOverlay{} }

// apply reports false: outside the browser the overlay is drawn on the
// window.
func (d *domOverlay) apply(Scene) bool { return false }

func (d *domOverlay) dial() (image.Rectangle, bool) { return image.Rectangle{}, false }
