package uthreads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestAmbientFunctionsDelegateToDefaultRuntime exercises the package-level
// free functions against the lazily-built default runtime. Because that
// runtime is a process-wide singleton (see defaultRuntime), this is the
// only test in the package allowed to call Init/Spawn at package scope;
// it uses the real wall-clock ticker and a generous timeout rather than a
// ManualDriver, since nothing else can be injected into the singleton.
func TestAmbientFunctionsDelegateToDefaultRuntime(t *testing.T) {
	require.NoError(t, Init())

	ran := make(chan int, 1)
	id, err := Spawn(func(self int) {
		ran <- self
	})
	require.NoError(t, err)

	select {
	case got := <-ran:
		require.Equal(t, id, got)
	case <-time.After(2 * time.Second):
		t.Fatal("ambient Spawn was never dispatched by the default runtime's ticker")
	}

	require.GreaterOrEqual(t, GetTotalQuantums(), 1)
}
