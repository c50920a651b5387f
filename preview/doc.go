// Package preview is a raster view.Renderer built on gg. It picks document
// nodes in screen space and draws the document, the highlighted nodes and
// the transient preview of the running step into an image.
package preview
