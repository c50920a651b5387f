package document

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/internal/logging"
)

// ChangeKind describes why the document changed.
type ChangeKind uint8

const (
	ChangeCommit ChangeKind = iota + 1
	ChangeRollback
	ChangeUndo
	ChangeRedo
	ChangeSelection
)

var changeKindNames = [...]string{
	ChangeCommit:    "commit",
	ChangeRollback:  "rollback",
	ChangeUndo:      "undo",
	ChangeRedo:      "redo",
	ChangeSelection: "selection",
}

// String returns the change kind name.
func (k ChangeKind) String() string {
	if int(k) < len(changeKindNames) && changeKindNames[k] != "" {
		return changeKindNames[k]
	}
	return "unknown"
}

// Change is passed to change listeners. Name is the transaction or history
// record name, empty for selection changes.
type Change struct {
	Kind ChangeKind
	Name string
}

// Option configures a Document.
type Option func(*options)

type options struct {
	historyLimit int
}

// WithHistoryLimit bounds the number of undo steps kept.
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		o.historyLimit = n
	}
}

// Document owns the node graph, the selection and the history.
//
// Document is safe for concurrent use; mutations are serialized by a single
// open Transaction.
type Document struct {
	mu        sync.RWMutex
	nodes     []*Node
	selection []*Node
	history   *History
	tx        *Transaction

	listenerMu sync.Mutex
	listeners  map[int]func(Change)
	nextID     int
}

// New creates an empty document.
func New(opts ...Option) *Document {
	o := options{historyLimit: DefaultHistoryLimit}
	for _, opt := range opts {
		opt(&o)
	}
	return &Document{
		history:   newHistory(o.historyLimit),
		listeners: make(map[int]func(Change)),
	}
}

// Nodes returns the nodes in insertion order.
func (d *Document) Nodes() []*Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.nodes)
}

// Len returns the number of nodes.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.nodes)
}

// Node looks a node up by ID.
func (d *Document) Node(id string) (*Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, n := range d.nodes {
		if n.id == id {
			return n, true
		}
	}
	return nil, false
}

// AddNode appends a node. It requires an open transaction.
func (d *Document) AddNode(n *Node) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tx == nil {
		return ErrNoTransaction
	}
	if d.indexOf(n) >= 0 {
		return fmt.Errorf("add %s: %w", n.id, ErrNodeExists)
	}
	idx := len(d.nodes)
	d.insertAt(idx, n)
	d.tx.records = append(d.tx.records, addRecord{node: n, index: idx})
	return nil
}

// RemoveNode removes a node and drops it from the selection. It requires an
// open transaction.
func (d *Document) RemoveNode(n *Node) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tx == nil {
		return ErrNoTransaction
	}
	idx := d.indexOf(n)
	if idx < 0 {
		return fmt.Errorf("remove %s: %w", n.id, ErrNodeNotFound)
	}
	d.removeAt(idx)
	d.tx.records = append(d.tx.records, removeRecord{node: n, index: idx})
	return nil
}

// SetTransform replaces a node's transform. It requires an open
// transaction.
func (d *Document) SetTransform(n *Node, m geom.Matrix4) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tx == nil {
		return ErrNoTransaction
	}
	if d.indexOf(n) < 0 {
		return fmt.Errorf("transform %s: %w", n.id, ErrNodeNotFound)
	}
	before := n.Transform()
	n.setTransform(m)
	d.tx.records = append(d.tx.records, transformRecord{node: n, before: before, after: m})
	return nil
}

// Selected returns the selected nodes in selection order.
func (d *Document) Selected() []*Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.selection)
}

// IsSelected reports whether n is selected.
func (d *Document) IsSelected(n *Node) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Contains(d.selection, n)
}

// Select replaces the selection. Nodes not in the document are ignored.
func (d *Document) Select(nodes ...*Node) {
	d.mu.Lock()
	d.selection = d.selection[:0]
	for _, n := range nodes {
		if d.indexOf(n) >= 0 && !slices.Contains(d.selection, n) {
			d.selection = append(d.selection, n)
		}
	}
	d.mu.Unlock()
	d.notify(Change{Kind: ChangeSelection})
}

// ClearSelection empties the selection.
func (d *Document) ClearSelection() {
	d.Select()
}

// History returns a snapshot of the undo/redo stacks.
func (d *Document) History() HistoryState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.history.state()
}

// Undo reverts the most recent committed transaction.
func (d *Document) Undo() error {
	d.mu.Lock()
	if d.tx != nil {
		d.mu.Unlock()
		return ErrTransactionOpen
	}
	r, ok := d.history.popUndo()
	if !ok {
		d.mu.Unlock()
		return ErrNothingToUndo
	}
	r.undo(d)
	d.mu.Unlock()
	logging.Logger().Debug("document: undo", "name", r.Name, "changes", r.Len())
	d.notify(Change{Kind: ChangeUndo, Name: r.Name})
	return nil
}

// Redo reapplies the most recently undone transaction.
func (d *Document) Redo() error {
	d.mu.Lock()
	if d.tx != nil {
		d.mu.Unlock()
		return ErrTransactionOpen
	}
	r, ok := d.history.popRedo()
	if !ok {
		d.mu.Unlock()
		return ErrNothingToRedo
	}
	r.redo(d)
	d.mu.Unlock()
	logging.Logger().Debug("document: redo", "name", r.Name, "changes", r.Len())
	d.notify(Change{Kind: ChangeRedo, Name: r.Name})
	return nil
}

// OnChanged registers a listener called after every commit, rollback,
// undo, redo and selection change (the visual refresh hook). The returned
// function unregisters it.
func (d *Document) OnChanged(fn func(Change)) (remove func()) {
	d.listenerMu.Lock()
	defer d.listenerMu.Unlock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	return func() {
		d.listenerMu.Lock()
		defer d.listenerMu.Unlock()
		delete(d.listeners, id)
	}
}

func (d *Document) notify(c Change) {
	d.listenerMu.Lock()
	ids := make([]int, 0, len(d.listeners))
	for id := range d.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Change), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, d.listeners[id])
	}
	d.listenerMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

// Begin opens a transaction. Only one transaction may be open at a time.
func (d *Document) Begin(name string) (*Transaction, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tx != nil {
		return nil, fmt.Errorf("begin %q while %q is open: %w", name, d.tx.name, ErrTransactionOpen)
	}
	tx := &Transaction{
		id:        uuid.NewString(),
		name:      name,
		doc:       d,
		selection: slices.Clone(d.selection),
	}
	d.tx = tx
	return tx, nil
}

func (d *Document) indexOf(n *Node) int {
	return slices.Index(d.nodes, n)
}

func (d *Document) insertAt(idx int, n *Node) {
	d.nodes = slices.Insert(d.nodes, idx, n)
}

func (d *Document) removeAt(idx int) {
	n := d.nodes[idx]
	d.nodes = slices.Delete(d.nodes, idx, idx+1)
	if i := slices.Index(d.selection, n); i >= 0 {
		d.selection = slices.Delete(d.selection, i, i+1)
	}
}
