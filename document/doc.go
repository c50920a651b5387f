// Package document is the in-memory node graph the construction engine
// mutates: nodes, the selection set, undo/redo history and transactions.
//
// All graph mutations (AddNode, RemoveNode, SetTransform) must happen inside
// a Transaction. A committed transaction becomes exactly one history
// record, so a single Undo reverses every node it touched. Rolling back
// restores the node graph and the selection as they were at Begin.
//
//	err := document.Transact(doc, "circle", func(tx *document.Transaction) error {
//		return doc.AddNode(document.NewNode("circle", shape))
//	})
package document

import "errors"

// Errors returned by Document operations.
var (
	ErrNoTransaction   = errors.New("document: no open transaction")
	ErrTransactionOpen = errors.New("document: transaction already open")
	ErrTransactionDone = errors.New("document: transaction already finished")
	ErrNodeExists      = errors.New("document: node already in document")
	ErrNodeNotFound    = errors.New("document: node not found")
	ErrNothingToUndo   = errors.New("document: nothing to undo")
	ErrNothingToRedo   = errors.New("document: nothing to redo")
)
