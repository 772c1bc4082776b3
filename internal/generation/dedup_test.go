package generation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupTracker_Accept(t *testing.T) {
	tracker := NewDedupTracker()

	assert.True(t, tracker.Accept("What is Ohm's law?"))
	assert.False(t, tracker.Accept("What is Ohm's law?"))

	// Case and surrounding whitespace do not make a question new.
	assert.False(t, tracker.Accept("  WHAT IS OHM'S LAW?  "))

	// Any other character difference does.
	assert.True(t, tracker.Accept("What is Ohm's law"))

	assert.Equal(t, 2, tracker.Len())
}

func TestDedupTracker_Recent(t *testing.T) {
	tracker := NewDedupTracker()
	for i := 0; i < 5; i++ {
		tracker.Accept(fmt.Sprintf("question %d", i))
	}

	t.Run("fewer than n returns all in order", func(t *testing.T) {
		assert.Equal(t, []string{"question 0", "question 1", "question 2", "question 3", "question 4"}, tracker.Recent(10))
	})

	t.Run("caps to most recent n", func(t *testing.T) {
		assert.Equal(t, []string{"question 3", "question 4"}, tracker.Recent(2))
	})

	t.Run("non-positive n", func(t *testing.T) {
		assert.Nil(t, tracker.Recent(0))
	})

	t.Run("empty tracker", func(t *testing.T) {
		assert.Nil(t, NewDedupTracker().Recent(3))
	})
}
