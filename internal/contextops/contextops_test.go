package contextops

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeParksUntilFirstRestore(t *testing.T) {
	ran := make(chan struct{})
	c := Make(func() {
		close(ran)
	})

	select {
	case <-ran:
		t.Fatal("body ran before first Restore")
	case <-time.After(20 * time.Millisecond):
	}

	c.Restore()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("body never ran after Restore")
	}
}

func TestSaveResumesExactlyWhereItParked(t *testing.T) {
	progress := make(chan int, 3)
	var c *Context
	c = Make(func() {
		progress <- 1
		killed := c.Save()
		require.False(t, killed)
		progress <- 2
	})

	c.Restore()
	require.Equal(t, 1, <-progress)

	select {
	case v := <-progress:
		t.Fatalf("unexpected progress %d before second Restore", v)
	case <-time.After(20 * time.Millisecond):
	}

	c.Restore()
	require.Equal(t, 2, <-progress)
}

func TestKillBeforeFirstRestoreNeverRunsBody(t *testing.T) {
	ran := make(chan struct{})
	c := Make(func() {
		close(ran)
	})
	c.Kill()

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("killed context never reported done")
	}
	select {
	case <-ran:
		t.Fatal("body ran despite being killed before its first turn")
	default:
	}
}

func TestKillUnparksASavedThread(t *testing.T) {
	entered := make(chan struct{})
	finished := make(chan struct{})
	var c *Context
	c = Make(func() {
		close(entered)
		if c.Save() {
			return
		}
		close(finished)
	})

	c.Restore()
	<-entered
	c.Kill()

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("killed, parked context never reported done")
	}
	select {
	case <-finished:
		t.Fatal("body continued past Save despite being killed")
	default:
	}
}

func TestRestoreIsIdempotentWithoutAReceiver(t *testing.T) {
	c := Make(func() {})
	c.Restore()
	c.Restore() // must not block or panic even though nothing has consumed the first turn yet
	assert.NotNil(t, c.Done())
}
