package navigation

// history is a linear back/forward sequence of addresses with a cursor.
// pos is -1 while the sequence is empty and a valid index otherwise.
type history struct {
	entries []Address
	pos     int
}

func newHistory() *history {
	return &history{
		entries: nil,
		pos:     -1,
	}
}

// push appends addr after the cursor, dropping any forward entries.
func (h *history) push(addr Address) {
	if h.pos < len(h.entries)-1 {
		h.entries = h.entries[:h.pos+1]
	}
	h.entries = append(h.entries, addr)
	h.pos = len(h.entries) - 1
}

func (h *history) back() (Address, bool) {
	if !h.canGoBack() {
		return Address{}, false
	}
	h.pos--
	return h.entries[h.pos], true
}

func (h *history) forward() (Address, bool) {
	if !h.canGoForward() {
		return Address{}, false
	}
	h.pos++
	return h.entries[h.pos], true
}

// current returns the entry under the cursor, or the zero Address.
func (h *history) current() Address {
	if h.pos < 0 || h.pos >= len(h.entries) {
		return Address{}
	}
	return h.entries[h.pos]
}

func (h *history) canGoBack() bool {
	return h.pos > 0
}

func (h *history) canGoForward() bool {
	return h.pos < len(h.entries)-1
}

func (h *history) size() int {
	return len(h.entries)
}

// snapshot returns a copy of the entries.
func (h *history) snapshot() []Address {
	out := make([]Address, len(h.entries))
	copy(out, h.entries)
	return out
}
