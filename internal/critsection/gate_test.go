package critsection

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateSerializesConcurrentEnter(t *testing.T) {
	var g Gate
	var counter int64
	var wg sync.WaitGroup

	const goroutines = 50
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			g.Enter()
			defer g.Exit()
			atomic.AddInt64(&counter, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(goroutines), counter)
}
