package document

import (
	"sync"

	"github.com/google/uuid"

	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/kernel"
)

// Node is one geometry object in the document: a shape in its local
// frame plus a transform placing it in the world.
type Node struct {
	id    string
	name  string
	shape kernel.Shape

	mu        sync.RWMutex
	transform geom.Matrix4
}

// NewNode creates a node with the identity transform.
func NewNode(name string, shape kernel.Shape) *Node {
	return &Node{
		id:        uuid.NewString(),
		name:      name,
		shape:     shape,
		transform: geom.Identity(),
	}
}

// ID returns the node's unique identifier.
func (n *Node) ID() string { return n.id }

// Name returns the display name.
func (n *Node) Name() string { return n.name }

// Shape returns the shape in local coordinates.
func (n *Node) Shape() kernel.Shape { return n.shape }

// Transform returns the node's current transform.
func (n *Node) Transform() geom.Matrix4 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.transform
}

// WorldShape returns the shape with the node transform applied.
func (n *Node) WorldShape() kernel.Shape {
	m := n.Transform()
	if m.IsIdentity() {
		return n.shape
	}
	return n.shape.Transformed(m)
}

// Clone returns a new node sharing the shape and transform.
func (n *Node) Clone() *Node {
	c := NewNode(n.name, n.shape)
	c.transform = n.Transform()
	return c
}

func (n *Node) setTransform(m geom.Matrix4) {
	n.mu.Lock()
	n.transform = m
	n.mu.Unlock()
}
