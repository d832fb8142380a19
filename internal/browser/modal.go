package browser

import (
	"strconv"
	"strings"
)

// DefaultSampleSize is used when the count buffer is empty or does not parse
const DefaultSampleSize = 10

// InputModal collects the document count for a sample fetch.
// It is either inactive or active with a digit buffer, and remembers the
// view and collection it was opened for.
type InputModal struct {
	active     bool
	buffer     []byte
	origin     View
	collection string
	fallback   int
}

// NewInputModal creates an inactive modal whose empty-buffer value is fallback
func NewInputModal(fallback int) *InputModal {
	if fallback < 0 {
		fallback = DefaultSampleSize
	}
	return &InputModal{fallback: fallback}
}

// Open activates the modal with an empty buffer
func (m *InputModal) Open(origin View, collection string) {
	m.active = true
	m.buffer = m.buffer[:0]
	m.origin = origin
	m.collection = collection
}

// Active reports whether the modal is intercepting input
func (m *InputModal) Active() bool {
	return m.active
}

// Buffer returns the typed text
func (m *InputModal) Buffer() string {
	return string(m.buffer)
}

// Origin returns the view and collection the modal was opened for
func (m *InputModal) Origin() (View, string) {
	return m.origin, m.collection
}

// Append adds a digit; any other rune is ignored
func (m *InputModal) Append(r rune) bool {
	if !m.active || r < '0' || r > '9' {
		return false
	}
	m.buffer = append(m.buffer, byte(r))
	return true
}

// Backspace removes the last character
func (m *InputModal) Backspace() {
	if !m.active || len(m.buffer) == 0 {
		return
	}
	m.buffer = m.buffer[:len(m.buffer)-1]
}

// Cancel discards the buffer without side effects
func (m *InputModal) Cancel() {
	m.reset()
}

// Confirm closes the modal and returns the parsed limit with the origin it was opened for
func (m *InputModal) Confirm() (limit int, origin View, collection string) {
	limit = ParseLimit(string(m.buffer), m.fallback)
	origin, collection = m.origin, m.collection
	m.reset()
	return limit, origin, collection
}

func (m *InputModal) reset() {
	m.active = false
	m.buffer = m.buffer[:0]
	m.origin = nil
	m.collection = ""
}

// ParseLimit parses a non-negative integer, returning fallback for empty or malformed input
func ParseLimit(s string, fallback int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return fallback
	}
	return int(n)
}
