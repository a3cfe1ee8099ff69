package bookmark

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_AppendsInOrder(t *testing.T) {
	s := New(nil)
	s.Add("one")
	s.Add("two")
	s.Add("one")
	assert.Equal(t, []string{"one", "two", "one"}, Contents(s.Snapshot()))
}

func TestRemove(t *testing.T) {
	s := New([]Bookmark{{"a"}, {"b"}, {"c"}})
	require.NoError(t, s.Remove(1))
	assert.Equal(t, []string{"a", "c"}, Contents(s.Snapshot()))
}

func TestRemove_OutOfRange(t *testing.T) {
	s := New([]Bookmark{{"a"}, {"b"}})

	for _, idx := range []int{2, 5, -1} {
		err := s.Remove(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	assert.Equal(t, []string{"a", "b"}, Contents(s.Snapshot()))
}

func TestToggle(t *testing.T) {
	s := New(nil)

	s.Toggle("hello")
	assert.Equal(t, []string{"hello"}, Contents(s.Snapshot()))

	s.Toggle("hello")
	assert.Empty(t, s.Snapshot())
}

func TestToggle_RemovesFirstMatchOnly(t *testing.T) {
	s := New([]Bookmark{{"x"}, {"y"}, {"x"}})
	s.Toggle("x")
	assert.Equal(t, []string{"y", "x"}, Contents(s.Snapshot()))
}

func TestToggle_PairRestoresMembership(t *testing.T) {
	initial := []Bookmark{{"a"}, {"b"}}
	for _, c := range []string{"a", "b", "c"} {
		s := New(initial)
		s.Toggle(c)
		s.Toggle(c)
		assert.ElementsMatch(t, Contents(initial), Contents(s.Snapshot()), "content %q", c)
	}
}

func TestSnapshot_IsIndependent(t *testing.T) {
	initial := []Bookmark{{"a"}}
	s := New(initial)
	initial[0].Content = "changed"

	snap := s.Snapshot()
	snap[0].Content = "also changed"
	assert.Equal(t, []string{"a"}, Contents(s.Snapshot()))
}

func TestSnapshot_EmptyIsNotNil(t *testing.T) {
	assert.NotNil(t, New(nil).Snapshot())
}

func TestReplace(t *testing.T) {
	s := New([]Bookmark{{"a"}})
	s.Replace([]Bookmark{{"b"}, {"c"}})
	assert.Equal(t, []string{"b", "c"}, Contents(s.Snapshot()))
	assert.Equal(t, 2, s.Len())
}

func TestConcurrentToggle(t *testing.T) {
	s := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); s.Toggle("x") }()
		go func() { defer wg.Done(); _ = s.Snapshot() }()
	}
	wg.Wait()
	// An even number of toggles leaves the content absent.
	assert.Empty(t, s.Snapshot())
}
