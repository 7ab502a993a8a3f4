package mask

import "github.com/abdullathedruid/maskform/internal/selection"

// DefaultHistoryLimit bounds the undo stack when no limit is configured.
const DefaultHistoryLimit = 100

type snapshot struct {
	value     string
	sel       selection.Range
	startUndo bool // pushed by the first undo so redo can return to it
}

// history is a linear undo stack. index is -1 while not undoing; otherwise
// it points at the entry currently shown.
type history struct {
	entries []snapshot
	index   int
	limit   int
}

func newHistory(limit int) history {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return history{index: -1, limit: limit}
}

func (h *history) reset() {
	h.entries = nil
	h.index = -1
}

// record saves the state preceding an edit. Any redo tail is discarded.
func (h *history) record(s snapshot) {
	if h.index >= 0 {
		h.entries = h.entries[:h.index]
		h.index = -1
	}
	h.entries = append(h.entries, s)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]snapshot(nil), h.entries[over:]...)
	}
}

func (h *history) undo(current snapshot) (snapshot, bool) {
	if len(h.entries) == 0 || h.index == 0 {
		return snapshot{}, false
	}
	if h.index < 0 {
		last := h.entries[len(h.entries)-1]
		if last.value != current.value || last.sel != current.sel {
			current.startUndo = true
			h.entries = append(h.entries, current)
		}
		h.index = len(h.entries) - 1
		if h.index == 0 {
			h.index = -1
			return snapshot{}, false
		}
	}
	h.index--
	return h.entries[h.index], true
}

func (h *history) redo() (snapshot, bool) {
	if h.index < 0 || h.index >= len(h.entries)-1 {
		return snapshot{}, false
	}
	h.index++
	s := h.entries[h.index]
	if h.index == len(h.entries)-1 {
		h.index = -1
		if s.startUndo {
			h.entries = h.entries[:len(h.entries)-1]
		}
	}
	return s, true
}
