package document

// DefaultHistoryLimit is the number of undo steps kept by default.
const DefaultHistoryLimit = 50

// History is a bounded undo/redo log. It is owned by a Document and guarded
// by the document lock.
type History struct {
	limit int
	undos []*HistoryRecord
	redos []*HistoryRecord
}

func newHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

func (h *History) push(r *HistoryRecord) {
	h.undos = append(h.undos, r)
	if len(h.undos) > h.limit {
		h.undos = h.undos[len(h.undos)-h.limit:]
	}
	h.redos = nil
}

func (h *History) popUndo() (*HistoryRecord, bool) {
	if len(h.undos) == 0 {
		return nil, false
	}
	r := h.undos[len(h.undos)-1]
	h.undos = h.undos[:len(h.undos)-1]
	h.redos = append(h.redos, r)
	return r, true
}

func (h *History) popRedo() (*HistoryRecord, bool) {
	if len(h.redos) == 0 {
		return nil, false
	}
	r := h.redos[len(h.redos)-1]
	h.redos = h.redos[:len(h.redos)-1]
	h.undos = append(h.undos, r)
	return r, true
}

// HistoryState is a snapshot of the undo/redo stacks.
type HistoryState struct {
	// Undo lists record names, oldest first.
	Undo []string
	// Redo lists record names, next redo last.
	Redo []string
}

func (h *History) state() HistoryState {
	s := HistoryState{}
	for _, r := range h.undos {
		s.Undo = append(s.Undo, r.Name)
	}
	for _, r := range h.redos {
		s.Redo = append(s.Redo, r.Name)
	}
	return s
}
