// Package view is a headless rendition of the slide view.
//
// A Model owns one Slide per deck entry plus the optional widgets (progress
// dots, counter, buttons, fullscreen) and exposes their combined state as a
// Frame. Presenters draw the Frame; the controller mutates the Model through
// the domain and ports interfaces.
package view
