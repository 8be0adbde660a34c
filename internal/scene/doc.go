// Package scene models the declarative scene graph a render submission
// describes: an ordered list of image-backed scenes plus a flat element list
// from which at most one audio track and one caption are selected.
//
// Zoom and pan tags are parsed and retained so submissions round-trip
// faithfully, but the current clip renderer does not animate them; they are
// documented as inert rather than silently dropped from the model.
package scene
