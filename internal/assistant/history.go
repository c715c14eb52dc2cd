package assistant

import "bankassist/internal/domain"

// Window bounds for the rolling conversation history. Reaching windowMax
// entries on an append drops the oldest windowTrim turns, keeping recent
// context without unbounded growth.
const (
	windowMax  = 12
	windowTrim = 6
)

// History is the bounded FIFO conversation window shared with the
// generative collaborator. It is transient and never persisted.
type History struct {
	turns []domain.Turn
}

// NewHistory creates an empty window.
func NewHistory() *History {
	return &History{turns: make([]domain.Turn, 0, windowMax)}
}

// Append adds a turn, trimming the oldest entries as a side effect when
// the window fills.
func (h *History) Append(t domain.Turn) {
	h.turns = append(h.turns, t)
	if len(h.turns) == windowMax {
		h.turns = append(h.turns[:0:0], h.turns[windowTrim:]...)
	}
}

// Turns returns the current window contents, oldest first.
func (h *History) Turns() []domain.Turn { return h.turns }

// Len reports how many turns are retained.
func (h *History) Len() int { return len(h.turns) }
