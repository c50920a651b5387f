package view

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/kernel"
)

// DefaultEventBuffer is the default capacity of the event queue.
const DefaultEventBuffer = 256

// Option configures a View.
type Option func(*options)

type options struct {
	camera    Camera
	workplane geom.Plane
	buffer    int
}

// WithCamera sets the initial camera.
func WithCamera(c Camera) Option {
	return func(o *options) { o.camera = c }
}

// WithWorkplane sets the initial workplane.
func WithWorkplane(pl geom.Plane) Option {
	return func(o *options) { o.workplane = pl }
}

// WithEventBuffer sets the event queue capacity.
func WithEventBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.buffer = n
		}
	}
}

// View is one viewport. It is safe for concurrent use.
type View struct {
	id       string
	renderer Renderer
	events   chan Event

	mu        sync.RWMutex
	camera    Camera
	workplane geom.Plane
}

// New creates a view drawing through r.
func New(r Renderer, opts ...Option) *View {
	o := options{
		camera:    DefaultCamera(800, 600),
		workplane: geom.PlaneXY,
		buffer:    DefaultEventBuffer,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &View{
		id:        uuid.NewString(),
		renderer:  r,
		events:    make(chan Event, o.buffer),
		camera:    o.camera,
		workplane: o.workplane,
	}
}

// ID returns the view identifier.
func (v *View) ID() string { return v.id }

// Renderer returns the view's renderer.
func (v *View) Renderer() Renderer { return v.renderer }

// Camera returns the current camera.
func (v *View) Camera() Camera {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.camera
}

// SetCamera replaces the camera.
func (v *View) SetCamera(c Camera) {
	v.mu.Lock()
	v.camera = c
	v.mu.Unlock()
}

// Workplane returns the active workplane.
func (v *View) Workplane() geom.Plane {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.workplane
}

// SetWorkplane replaces the active workplane.
func (v *View) SetWorkplane(pl geom.Plane) {
	v.mu.Lock()
	v.workplane = pl
	v.mu.Unlock()
}

// Ray returns the picking ray through pixel (x, y).
func (v *View) Ray(x, y float64) geom.Ray {
	return v.Camera().Ray(x, y)
}

// WorldToScreen projects p to pixel coordinates.
func (v *View) WorldToScreen(p geom.XYZ) (x, y float64) {
	return v.Camera().WorldToScreen(p)
}

// ScreenDistance returns the pixel distance between p and (x, y).
func (v *View) ScreenDistance(p geom.XYZ, x, y float64) float64 {
	px, py := v.WorldToScreen(p)
	return geom.XYZ{X: px - x, Y: py - y}.Length()
}

// Pick asks the renderer for shapes near (x, y). A view without a
// renderer picks nothing.
func (v *View) Pick(x, y float64, filter kernel.ShapeKind) []VisualShape {
	if v.renderer == nil {
		return nil
	}
	return v.renderer.Pick(v, x, y, filter)
}

// Dispatch queues an event. It blocks while the queue is full.
func (v *View) Dispatch(events ...Event) {
	for _, e := range events {
		v.events <- e
	}
}

// DispatchContext queues an event, giving up when ctx ends.
func (v *View) DispatchContext(ctx context.Context, e Event) error {
	select {
	case v.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events returns the event queue.
func (v *View) Events() <-chan Event { return v.events }

// Drain discards every queued event and returns how many were dropped.
func (v *View) Drain() int {
	n := 0
	for {
		select {
		case <-v.events:
			n++
		default:
			return n
		}
	}
}
