// Package snap turns pointer positions into geometric candidates and
// resolves one of them as the outcome of an interaction step.
//
// A Snapper is a strategy evaluated against the pointer position and the
// shapes the renderer reports under the cursor. Merge ranks the candidates
// of every snapper: feature points (vertices, endpoints, midpoints,
// centers, perpendicular feet, intersections, step feature points) beat
// points on curves, which beat projections onto a plane or axis. Within a
// rank the candidate nearest to the pointer on screen wins; equal
// distances keep snapper order.
//
// A Handler reads a view's events, drives the live preview and resolves an
// async.Controller: success on confirm (left click or Enter), cancel on
// Escape or right click.
package snap
