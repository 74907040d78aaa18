package navigation

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingProber records probed addresses and fails for those in fail.
type recordingProber struct {
	probed []string
	fail   map[string]error
}

func (p *recordingProber) Probe(addr Address) error {
	p.probed = append(p.probed, addr.String())
	if err, ok := p.fail[addr.String()]; ok {
		return err
	}
	return nil
}

func visitAll(t *testing.T, n *Navigator, inputs ...string) []Address {
	t.Helper()
	out := make([]Address, 0, len(inputs))
	for _, in := range inputs {
		addr, err := n.Visit(in)
		require.NoError(t, err, in)
		out = append(out, addr)
	}
	return out
}

func TestNewNavigatorIsEmpty(t *testing.T) {
	n := New(nil)

	assert.Equal(t, -1, n.Cursor())
	assert.Equal(t, 0, n.Len())
	assert.True(t, n.Current().IsZero())
	assert.True(t, n.Home().IsZero())
	assert.False(t, n.HasNext())
	assert.False(t, n.HasPrevious())
	assert.Empty(t, n.Bookmarks())
}

func TestVisitAppendsAndAdvances(t *testing.T) {
	p := &recordingProber{}
	n := New(p)

	addr, err := n.Visit("https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", addr.String())
	assert.Equal(t, addr, n.Current())
	assert.Equal(t, 0, n.Cursor())
	assert.Equal(t, []string{"https://example.com"}, p.probed)
}

func TestHasPreviousAfterOneAndTwoVisits(t *testing.T) {
	n := New(nil)

	visitAll(t, n, "https://a.com")
	assert.False(t, n.HasPrevious())

	visitAll(t, n, "https://b.com")
	assert.True(t, n.HasPrevious())
}

func TestVisitResolutionFailureLeavesStateUnchanged(t *testing.T) {
	p := &recordingProber{}
	n := New(p)
	visitAll(t, n, "https://a.com")

	_, err := n.Visit("%zz")
	require.Error(t, err)

	var navErr *NavigationError
	require.True(t, errors.As(err, &navErr))
	assert.Equal(t, "%zz", navErr.Input)

	var resErr *ResolutionError
	assert.True(t, errors.As(err, &resErr))

	assert.Equal(t, 0, n.Cursor())
	assert.Equal(t, 1, n.Len())
	assert.Len(t, p.probed, 1, "prober must not run for unresolvable input")
}

func TestVisitEmptyInputWithoutCurrentFails(t *testing.T) {
	n := New(nil)

	_, err := n.Visit("")
	var resErr *ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, 0, n.Len())
	assert.Equal(t, -1, n.Cursor())
}

func TestVisitEmptyInputResolvesAgainstCurrent(t *testing.T) {
	n := New(nil)
	visitAll(t, n, "https://a.com")

	addr, err := n.Visit("")
	require.NoError(t, err)
	assert.Equal(t, "https://a.com/", addr.String())
	assert.Equal(t, 2, n.Len())
	assert.Equal(t, 1, n.Cursor())
}

func TestVisitProbeFailureLeavesStateUnchanged(t *testing.T) {
	errDown := errors.New("connection refused")
	p := &recordingProber{fail: map[string]error{"https://down.com": errDown}}
	n := New(p)
	first := visitAll(t, n, "https://a.com")[0]

	_, err := n.Visit("https://down.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, errDown)

	var navErr *NavigationError
	require.True(t, errors.As(err, &navErr))
	assert.Equal(t, "https://down.com", navErr.Input)

	assert.Equal(t, first, n.Current())
	assert.Equal(t, 1, n.Len())
	assert.False(t, n.HasNext())

	// The core stays usable after a failure.
	_, err = n.Visit("https://b.com")
	require.NoError(t, err)
	assert.Equal(t, 2, n.Len())
}

func TestProberFunc(t *testing.T) {
	var got Address
	n := New(ProberFunc(func(addr Address) error {
		got = addr
		return nil
	}))

	addr, err := n.Visit("example.org")
	require.NoError(t, err)
	assert.Equal(t, addr, got)
	assert.Equal(t, "http://example.org", got.String())
}

func TestGoForwardAndBackOnEmptyHistory(t *testing.T) {
	n := New(nil)

	_, err := n.GoForward()
	assert.ErrorIs(t, err, ErrNoNext)

	_, err = n.GoBack()
	assert.ErrorIs(t, err, ErrNoPrevious)

	assert.Equal(t, -1, n.Cursor())
}

func TestGoBackAtFirstEntry(t *testing.T) {
	n := New(nil)
	visitAll(t, n, "https://a.com")

	_, err := n.GoBack()
	assert.ErrorIs(t, err, ErrNoPrevious)
	assert.Equal(t, 0, n.Cursor())
}

func TestTraversalDoesNotProbe(t *testing.T) {
	p := &recordingProber{}
	n := New(p)
	visitAll(t, n, "https://a.com", "https://b.com")

	_, err := n.GoBack()
	require.NoError(t, err)
	_, err = n.GoForward()
	require.NoError(t, err)

	assert.Len(t, p.probed, 2)
}

func TestBackForwardRoundTrip(t *testing.T) {
	n := New(nil)
	visitAll(t, n, "https://a.com", "https://b.com", "https://c.com")

	before := n.Current()
	_, err := n.GoBack()
	require.NoError(t, err)

	after, err := n.GoForward()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestVisitFromBackStatePrunesForwardBranch(t *testing.T) {
	n := New(nil)
	addrs := visitAll(t, n, "https://a.com", "https://b.com", "https://c.com")
	require.Equal(t, 2, n.Cursor())

	_, err := n.GoBack()
	require.NoError(t, err)
	back, err := n.GoBack()
	require.NoError(t, err)
	assert.Equal(t, addrs[0], back)
	assert.Equal(t, 0, n.Cursor())

	d, err := n.Visit("https://d.com")
	require.NoError(t, err)

	assert.Equal(t, []Address{addrs[0], d}, n.Entries())
	assert.Equal(t, 1, n.Cursor())
	assert.False(t, n.HasNext())
}

func TestRevisitAppendsDuplicate(t *testing.T) {
	n := New(nil)
	addrs := visitAll(t, n, "https://a.com", "https://a.com")

	assert.Equal(t, addrs[0], addrs[1])
	assert.Equal(t, 2, n.Len())
	assert.True(t, n.HasPrevious())
}

func TestVisitResolvesRelativeToCurrent(t *testing.T) {
	n := New(nil)
	visitAll(t, n, "http://site.com/page")

	addr, err := n.Visit("other")
	require.NoError(t, err)
	assert.Equal(t, "http://site.com/page/other", addr.String())
}

func TestRelativeResolutionFollowsCursor(t *testing.T) {
	n := New(nil)
	visitAll(t, n, "http://a.com", "http://b.com")

	_, err := n.GoBack()
	require.NoError(t, err)

	addr, err := n.Visit("docs")
	require.NoError(t, err)
	assert.Equal(t, "http://a.com/docs", addr.String())
}

func TestNavigationScenario(t *testing.T) {
	n := New(nil)
	addrs := visitAll(t, n, "a.com", "b.com")

	back, err := n.GoBack()
	require.NoError(t, err)
	assert.Equal(t, addrs[0], back)

	fwd, err := n.GoForward()
	require.NoError(t, err)
	assert.Equal(t, addrs[1], fwd)

	_, err = n.GoForward()
	assert.ErrorIs(t, err, ErrNoNext)
}

func TestQueriesMatchTraversal(t *testing.T) {
	n := New(nil)
	visitAll(t, n, "https://a.com", "https://b.com")

	steps := []struct {
		forward bool
	}{{false}, {true}, {true}, {false}, {false}}

	for _, step := range steps {
		if step.forward {
			hasNext := n.HasNext()
			_, err := n.GoForward()
			assert.Equal(t, hasNext, err == nil)
		} else {
			hasPrev := n.HasPrevious()
			_, err := n.GoBack()
			assert.Equal(t, hasPrev, err == nil)
		}
	}
}

func TestCursorStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	fail := map[string]error{"https://down.com": errors.New("down")}
	n := New(&recordingProber{fail: fail})
	inputs := []string{"https://a.com", "b.com", "rel/path", "https://down.com", "", "https://c.com"}

	for i := 0; i < 2000; i++ {
		switch rng.Intn(6) {
		case 0, 1:
			_, _ = n.Visit(inputs[rng.Intn(len(inputs))])
		case 2:
			hasNext := n.HasNext()
			_, err := n.GoForward()
			assert.Equal(t, hasNext, err == nil)
		case 3:
			hasPrev := n.HasPrevious()
			_, err := n.GoBack()
			assert.Equal(t, hasPrev, err == nil)
		case 4:
			n.SetHome()
		case 5:
			n.AddBookmark("mark")
		}

		c := n.Cursor()
		require.GreaterOrEqual(t, c, -1)
		require.Less(t, c, n.Len())
		if n.Len() == 0 {
			require.Equal(t, -1, c)
		} else {
			require.GreaterOrEqual(t, c, 0)
		}
	}
}

func TestSetHome(t *testing.T) {
	n := New(nil)

	n.SetHome()
	assert.True(t, n.Home().IsZero(), "SetHome without a current address is a no-op")

	addrs := visitAll(t, n, "https://a.com", "https://b.com")
	n.SetHome()
	assert.Equal(t, addrs[1], n.Home())

	_, err := n.GoBack()
	require.NoError(t, err)
	n.SetHome()
	assert.Equal(t, addrs[0], n.Home())
}

func TestAddBookmarkWithoutVisitIsNoop(t *testing.T) {
	n := New(nil)

	n.AddBookmark("home")

	_, err := n.Bookmark("home")
	var bmErr *UnknownBookmarkError
	require.True(t, errors.As(err, &bmErr))
	assert.Equal(t, "home", bmErr.Name)
	assert.Empty(t, n.Bookmarks())
}

func TestAddBookmarkEmptyNameIsNoop(t *testing.T) {
	n := New(nil)
	visitAll(t, n, "https://a.com")

	n.AddBookmark("")
	assert.Empty(t, n.Bookmarks())
}

func TestBookmarkEmptyNameAlwaysFails(t *testing.T) {
	n := New(nil)
	visitAll(t, n, "https://a.com")
	n.AddBookmark("a")

	_, err := n.Bookmark("")
	var bmErr *UnknownBookmarkError
	require.True(t, errors.As(err, &bmErr))
	assert.Equal(t, "bookmark name is empty", err.Error())
}

func TestBookmarkOverwriteAndCaseSensitivity(t *testing.T) {
	n := New(nil)
	addrs := visitAll(t, n, "https://a.com")
	n.AddBookmark("Docs")

	addrs = append(addrs, visitAll(t, n, "https://b.com")...)
	n.AddBookmark("docs")

	got, err := n.Bookmark("Docs")
	require.NoError(t, err)
	assert.Equal(t, addrs[0], got)

	got, err = n.Bookmark("docs")
	require.NoError(t, err)
	assert.Equal(t, addrs[1], got)

	n.AddBookmark("Docs")
	got, err = n.Bookmark("Docs")
	require.NoError(t, err)
	assert.Equal(t, addrs[1], got)

	assert.Equal(t, []string{"Docs", "docs"}, n.Bookmarks())
}

func TestEntriesIsACopy(t *testing.T) {
	n := New(nil)
	visitAll(t, n, "https://a.com")

	entries := n.Entries()
	entries[0] = Address{}

	assert.False(t, n.Current().IsZero())
}
