package app

import (
	"sync"

	"github.com/vidyasagar/navcore/internal/navigation"
)

// session serializes access to the Navigator. Visit runs on a command
// goroutine while key handling reads the same state on the update loop.
type session struct {
	mu  sync.Mutex
	nav *navigation.Navigator
}

// navState is a consistent copy of what the shell shows.
type navState struct {
	Current     navigation.Address
	Home        navigation.Address
	Cursor      int
	Entries     []navigation.Address
	HasPrevious bool
	HasNext     bool
}

func newSession(prober navigation.Prober) *session {
	return &session{nav: navigation.New(prober)}
}

func (s *session) visit(input string) (navigation.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Visit(input)
}

func (s *session) back() (navigation.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.GoBack()
}

func (s *session) forward() (navigation.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.GoForward()
}

func (s *session) setHome() navigation.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.SetHome()
	return s.nav.Home()
}

func (s *session) addBookmark(name string) navigation.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.AddBookmark(name)
	return s.nav.Current()
}

func (s *session) bookmark(name string) (navigation.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Bookmark(name)
}

func (s *session) bookmarks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Bookmarks()
}

func (s *session) state() navState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return navState{
		Current:     s.nav.Current(),
		Home:        s.nav.Home(),
		Cursor:      s.nav.Cursor(),
		Entries:     s.nav.Entries(),
		HasPrevious: s.nav.HasPrevious(),
		HasNext:     s.nav.HasNext(),
	}
}
