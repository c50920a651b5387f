// Package step defines the reusable units of user interaction a command
// sequences: pick a point, a length, an angle or a shape.
//
// Steps are stateless. Each Execute builds its snap.Data from the results
// already accepted in the same command run, runs one snap.Handler and
// returns the accepted result, or nil when the controller was cancelled
// or failed.
package step
