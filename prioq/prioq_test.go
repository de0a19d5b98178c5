package prioq

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDequeueHighestOrdersByPriority(t *testing.T) {
	l := New[string]()
	l.Enqueue("low", 1)
	l.Enqueue("high", 9)
	l.Enqueue("mid", 5)

	for _, want := range []string{"high", "mid", "low"} {
		got, err := l.DequeueHighest()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.True(t, l.Empty())
}

func TestEqualPrioritiesDequeueInAdmissionOrder(t *testing.T) {
	l := New[int]()
	for i := 0; i < 10; i++ {
		l.Enqueue(i, 0)
	}

	for i := 0; i < 10; i++ {
		got, err := l.DequeueHighest()
		require.NoError(t, err)
		if got != i {
			t.Errorf("dequeue %d: got %d, want %d", i, got, i)
		}
	}
}

func TestDequeueHighestEmpty(t *testing.T) {
	l := New[string]()
	v, err := l.DequeueHighest()
	require.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, "", v)

	// Still empty after a failed dequeue.
	_, err = l.DequeueHighest()
	require.ErrorIs(t, err, ErrEmpty)
}

func TestLenAndEmpty(t *testing.T) {
	l := New[int]()
	assert.True(t, l.Empty())
	assert.Equal(t, 0, l.Len())

	l.Enqueue(1, 0)
	l.Enqueue(2, 7)
	assert.False(t, l.Empty())
	assert.Equal(t, 2, l.Len())

	_, err := l.DequeueHighest()
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
}

func TestLateHighPriorityJumpsAhead(t *testing.T) {
	l := New[string]()
	l.Enqueue("a", 0)
	l.Enqueue("b", 0)

	got, err := l.DequeueHighest()
	require.NoError(t, err)
	require.Equal(t, "a", got)

	// "urgent" arrives after "b" but outranks it.
	l.Enqueue("urgent", 10)

	got, err = l.DequeueHighest()
	require.NoError(t, err)
	assert.Equal(t, "urgent", got)

	got, err = l.DequeueHighest()
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestDequeueOrderIsTotal(t *testing.T) {
	type item struct {
		priority int
		seq      int
	}

	rng := rand.New(rand.NewSource(42))
	l := New[item]()
	for i := 0; i < 500; i++ {
		p := rng.Intn(5)
		l.Enqueue(item{priority: p, seq: i}, p)
	}

	var prev item
	first := true
	for !l.Empty() {
		got, err := l.DequeueHighest()
		require.NoError(t, err)
		if !first {
			if got.priority > prev.priority {
				t.Fatalf("priority went up: %d after %d", got.priority, prev.priority)
			}
			if got.priority == prev.priority && got.seq < prev.seq {
				t.Fatalf("admission order violated within priority %d: seq %d after %d",
					got.priority, got.seq, prev.seq)
			}
		}
		prev, first = got, false
	}
}
