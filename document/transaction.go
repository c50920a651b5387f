package document

import (
	"fmt"

	"github.com/rasenga223/luminicad/internal/logging"
)

// Transaction groups document mutations into one undoable unit.
type Transaction struct {
	id        string
	name      string
	doc       *Document
	records   []record
	selection []*Node
	done      bool
}

// ID returns the transaction's unique identifier.
func (tx *Transaction) ID() string { return tx.id }

// Name returns the transaction name shown in the history.
func (tx *Transaction) Name() string { return tx.name }

// Commit closes the transaction and records its changes as one history
// step. A transaction with no changes leaves the history untouched.
func (tx *Transaction) Commit() error {
	d := tx.doc
	d.mu.Lock()
	if tx.done {
		d.mu.Unlock()
		return ErrTransactionDone
	}
	tx.done = true
	d.tx = nil
	if len(tx.records) > 0 {
		d.history.push(&HistoryRecord{ID: tx.id, Name: tx.name, records: tx.records})
	}
	d.mu.Unlock()

	logging.Logger().Debug("document: commit", "name", tx.name, "changes", len(tx.records))
	d.notify(Change{Kind: ChangeCommit, Name: tx.name})
	return nil
}

// Rollback reverts every change made in the transaction and restores the
// selection captured at Begin. Rolling back a finished transaction is a
// no-op.
func (tx *Transaction) Rollback() {
	d := tx.doc
	d.mu.Lock()
	if tx.done {
		d.mu.Unlock()
		return
	}
	tx.done = true
	d.tx = nil
	for i := len(tx.records) - 1; i >= 0; i-- {
		tx.records[i].undo(d)
	}
	d.selection = tx.selection
	d.mu.Unlock()

	logging.Logger().Debug("document: rollback", "name", tx.name, "changes", len(tx.records))
	d.notify(Change{Kind: ChangeRollback, Name: tx.name})
}

// Transact runs fn inside a named transaction. The transaction commits when
// fn returns nil and rolls back when fn returns an error or panics; panics
// are re-raised after the rollback.
func Transact(d *Document, name string, fn func(tx *Transaction) error) (err error) {
	tx, err := d.Begin(name)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()
	if err := fn(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("transaction %q: %w", name, err)
	}
	return tx.Commit()
}
