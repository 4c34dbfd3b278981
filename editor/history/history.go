// Package history keeps a bounded stack of serialized state snapshots.
// It is agnostic to the snapshot encoding; callers hand it opaque blobs and
// get them back verbatim, which keeps the undo contract byte-exact.
package history

// DefaultLimit bounds the undo stack; the oldest entries are dropped first.
const DefaultLimit = 100

type History struct {
	limit int
	undo  [][]byte
	redo  [][]byte
}

func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Push records a snapshot taken immediately before a committed mutation.
// Any redo future is invalidated.
func (h *History) Push(snapshot []byte) {
	h.undo = append(h.undo, snapshot)
	if n := len(h.undo) - h.limit; n > 0 {
		h.undo = append(h.undo[:0:0], h.undo[n:]...)
	}
	h.redo = h.redo[:0]
}

// Undo exchanges current for the most recent snapshot. Returns false when
// there is nothing to undo.
func (h *History) Undo(current []byte) ([]byte, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	h.redo = append(h.redo, current)
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return top, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current []byte) ([]byte, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	h.undo = append(h.undo, current)
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return top, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
func (h *History) UndoLen() int  { return len(h.undo) }
func (h *History) RedoLen() int  { return len(h.redo) }

// Oldest returns the earliest surviving undo snapshot, or nil.
func (h *History) Oldest() []byte {
	if len(h.undo) == 0 {
		return nil
	}
	return h.undo[0]
}

// Reset drops both stacks (new plan / load).
func (h *History) Reset() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}
