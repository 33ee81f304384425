package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	table := New()

	counter := 0
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := table.Lock("player-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestLockReleasesEntry(t *testing.T) {
	table := New()

	unlock := table.Lock("player-1")
	unlock()

	table.mu.Lock()
	defer table.mu.Unlock()
	assert.Empty(t, table.locks)
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	table := New()

	unlockA := table.Lock("a")
	defer unlockA()

	// Acquiring an unrelated key must not deadlock while "a" is held
	done := make(chan struct{})
	go func() {
		unlockB := table.Lock("b")
		unlockB()
		close(done)
	}()
	<-done
}
