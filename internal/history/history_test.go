package history

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_EvictsOldest(t *testing.T) {
	b := New(3)
	for _, s := range []string{"a", "b", "c", "d"} {
		b.Add(s)
	}
	assert.Equal(t, []string{"d", "c", "b"}, b.Snapshot())
}

func TestAdd_DuplicateMovesToFront(t *testing.T) {
	b := New(10)
	b.Add("y")
	b.Add("x")
	require.Equal(t, []string{"x", "y"}, b.Snapshot())

	b.Add("y")
	assert.Equal(t, []string{"y", "x"}, b.Snapshot())
	assert.Equal(t, 2, b.Len())
}

func TestAdd_EmptyTextAccepted(t *testing.T) {
	b := New(2)
	b.Add("")
	b.Add("")
	assert.Equal(t, []string{""}, b.Snapshot())
}

func TestAdd_ZeroCapacityKeepsNothing(t *testing.T) {
	b := New(0)
	b.Add("a")
	assert.Empty(t, b.Snapshot())
	_, ok := b.Latest()
	assert.False(t, ok)
}

func TestAdd_RandomSequencesHoldInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for capacity := uint(0); capacity < 6; capacity++ {
		b := New(capacity)
		for i := 0; i < 200; i++ {
			v := fmt.Sprintf("v%d", r.Intn(8))
			b.Add(v)

			snap := b.Snapshot()
			assert.LessOrEqual(t, uint(len(snap)), capacity)
			seen := make(map[string]bool, len(snap))
			for _, s := range snap {
				assert.False(t, seen[s], "duplicate %q", s)
				seen[s] = true
			}
			if capacity > 0 {
				assert.Equal(t, v, snap[0])
			}
		}
	}
}

func TestRemove(t *testing.T) {
	b := New(5)
	b.Add("a")
	b.Add("b")
	b.Add("c")

	b.Remove("b")
	assert.Equal(t, []string{"c", "a"}, b.Snapshot())

	b.Remove("missing")
	assert.Equal(t, []string{"c", "a"}, b.Snapshot())
}

func TestSnapshot_IsIndependent(t *testing.T) {
	b := New(5)
	b.Add("a")
	snap := b.Snapshot()
	snap[0] = "mutated"
	assert.Equal(t, []string{"a"}, b.Snapshot())
}

func TestResize(t *testing.T) {
	tests := []struct {
		name     string
		capacity uint
		want     []string
	}{
		{"shrink", 2, []string{"a", "b"}},
		{"same", 3, []string{"a", "b", "c"}},
		{"grow", 10, []string{"a", "b", "c"}},
		{"zero", 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(3)
			b.Add("c")
			b.Add("b")
			b.Add("a")

			b.Resize(tt.capacity)
			assert.Equal(t, tt.want, b.Snapshot())
			assert.Equal(t, tt.capacity, b.Capacity())
		})
	}
}

func TestResize_GrowThenAdd(t *testing.T) {
	b := New(1)
	b.Add("a")
	b.Resize(3)
	b.Add("b")
	b.Add("c")
	assert.Equal(t, []string{"c", "b", "a"}, b.Snapshot())
}

func TestConcurrentAccess(t *testing.T) {
	b := New(16)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				b.Add(fmt.Sprintf("%d-%d", w, i%20))
				_ = b.Snapshot()
				if i%25 == 0 {
					b.Resize(uint(8 + i%16))
				}
			}
		}(w)
	}
	wg.Wait()
	assert.LessOrEqual(t, uint(b.Len()), b.Capacity())
}
