// Package navigation is the browser navigation core: session history with a
// back/forward cursor, address resolution, a home address and named
// bookmarks.
//
// A Navigator is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
package navigation

import "sort"

// Prober confirms that an address can be opened. Visit calls Probe exactly
// once per call and commits nothing when it fails.
type Prober interface {
	Probe(addr Address) error
}

// ProberFunc adapts a plain function to Prober.
type ProberFunc func(addr Address) error

// Probe calls f(addr).
func (f ProberFunc) Probe(addr Address) error {
	return f(addr)
}

// Navigator owns the history, cursor, home address and bookmark registry of
// one browsing session.
type Navigator struct {
	prober    Prober
	history   *history
	home      Address
	bookmarks map[string]Address
}

// New creates an empty Navigator. A nil prober treats every address as
// reachable.
func New(prober Prober) *Navigator {
	return &Navigator{
		prober:    prober,
		history:   newHistory(),
		bookmarks: make(map[string]Address),
	}
}

// Visit resolves input against the current address, probes it and, on
// success, appends it to history after discarding any forward entries.
// On failure the Navigator is left untouched and the error is a
// *NavigationError.
func (n *Navigator) Visit(input string) (Address, error) {
	addr, err := Resolve(input, n.Current())
	if err != nil {
		return Address{}, &NavigationError{Input: input, Cause: err}
	}

	if n.prober != nil {
		if err := n.prober.Probe(addr); err != nil {
			return Address{}, &NavigationError{Input: input, Cause: err}
		}
	}

	n.history.push(addr)
	return addr, nil
}

// GoForward moves the cursor one entry forward. It returns ErrNoNext when
// HasNext is false. The prober is not consulted.
func (n *Navigator) GoForward() (Address, error) {
	addr, ok := n.history.forward()
	if !ok {
		return Address{}, ErrNoNext
	}
	return addr, nil
}

// GoBack moves the cursor one entry back. It returns ErrNoPrevious when
// HasPrevious is false.
func (n *Navigator) GoBack() (Address, error) {
	addr, ok := n.history.back()
	if !ok {
		return Address{}, ErrNoPrevious
	}
	return addr, nil
}

// HasNext reports whether GoForward would succeed.
func (n *Navigator) HasNext() bool {
	return n.history.canGoForward()
}

// HasPrevious reports whether GoBack would succeed.
func (n *Navigator) HasPrevious() bool {
	return n.history.canGoBack()
}

// Current returns the address under the cursor, or the zero Address before
// the first successful visit.
func (n *Navigator) Current() Address {
	return n.history.current()
}

// Cursor returns the cursor index, -1 when history is empty.
func (n *Navigator) Cursor() int {
	return n.history.pos
}

// Len returns the number of history entries.
func (n *Navigator) Len() int {
	return n.history.size()
}

// Entries returns a copy of the history in visit order.
func (n *Navigator) Entries() []Address {
	return n.history.snapshot()
}

// SetHome makes the current address the home address. Without a current
// address it does nothing.
func (n *Navigator) SetHome() {
	if cur := n.Current(); !cur.IsZero() {
		n.home = cur
	}
}

// Home returns the home address, or the zero Address if none was set.
func (n *Navigator) Home() Address {
	return n.home
}

// AddBookmark stores the current address under name, replacing any earlier
// entry. An empty name or a missing current address is ignored.
func (n *Navigator) AddBookmark(name string) {
	cur := n.Current()
	if name == "" || cur.IsZero() {
		return
	}
	n.bookmarks[name] = cur
}

// Bookmark returns the address stored under name.
func (n *Navigator) Bookmark(name string) (Address, error) {
	if name == "" {
		return Address{}, &UnknownBookmarkError{Name: name}
	}
	addr, ok := n.bookmarks[name]
	if !ok {
		return Address{}, &UnknownBookmarkError{Name: name}
	}
	return addr, nil
}

// Bookmarks returns the registered names in ascending order.
func (n *Navigator) Bookmarks() []string {
	names := make([]string, 0, len(n.bookmarks))
	for name := range n.bookmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
