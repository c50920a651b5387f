package document

import "github.com/rasenga223/luminicad/geom"

// record is one reversible change. Records are applied while the document
// lock is held.
type record interface {
	undo(d *Document)
	redo(d *Document)
}

type addRecord struct {
	node  *Node
	index int
}

func (r addRecord) undo(d *Document) { d.removeAt(r.index) }
func (r addRecord) redo(d *Document) { d.insertAt(r.index, r.node) }

type removeRecord struct {
	node  *Node
	index int
}

func (r removeRecord) undo(d *Document) { d.insertAt(r.index, r.node) }
func (r removeRecord) redo(d *Document) { d.removeAt(r.index) }

type transformRecord struct {
	node          *Node
	before, after geom.Matrix4
}

func (r transformRecord) undo(*Document) { r.node.setTransform(r.before) }
func (r transformRecord) redo(*Document) { r.node.setTransform(r.after) }

// HistoryRecord is one undo step: every change made by one committed
// transaction.
type HistoryRecord struct {
	ID      string
	Name    string
	records []record
}

// Len returns the number of changes in the record.
func (h *HistoryRecord) Len() int { return len(h.records) }

func (h *HistoryRecord) undo(d *Document) {
	for i := len(h.records) - 1; i >= 0; i-- {
		h.records[i].undo(d)
	}
}

func (h *HistoryRecord) redo(d *Document) {
	for _, r := range h.records {
		r.redo(d)
	}
}
