// Package view holds the per-viewport state the construction engine reads:
// the camera, the active workplane, the host's input event stream and the
// Renderer used for picking and transient preview output.
//
// Hosts translate their native input into Event values and feed them with
// View.Dispatch. Exactly one snap handler reads View.Events at a time.
package view
