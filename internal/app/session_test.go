package app

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionSerializesVisits(t *testing.T) {
	s := newSession(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.visit("https://example.com")
			assert.NoError(t, err)
			_ = s.state()
		}()
	}
	wg.Wait()

	st := s.state()
	assert.Len(t, st.Entries, 20)
	assert.Equal(t, 19, st.Cursor)
	assert.True(t, st.HasPrevious)
	assert.False(t, st.HasNext)
}
