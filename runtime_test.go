package uthreads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gopherschool/uthreads/internal/timer"
)

func newTestRuntime(t *testing.T) (*Runtime, *timer.ManualDriver) {
	t.Helper()
	driver := timer.NewManualDriver()
	rt, err := NewRuntime(
		WithMaxThreads(8),
		WithQuantumPeriod(time.Millisecond),
		WithTimerDriver(driver),
	)
	require.NoError(t, err)
	require.NoError(t, rt.Init())
	t.Cleanup(rt.Shutdown)
	return rt, driver
}

func TestRuntimeSpawnAndDispatch(t *testing.T) {
	rt, driver := newTestRuntime(t)

	ran := make(chan int, 1)
	id, err := rt.Spawn(func(self int) {
		ran <- self
	})
	require.NoError(t, err)

	driver.Fire()
	select {
	case got := <-ran:
		require.Equal(t, id, got)
	case <-time.After(time.Second):
		t.Fatal("spawned thread was never dispatched")
	}
}

func TestRuntimeGetTidAndTotalQuantums(t *testing.T) {
	rt, _ := newTestRuntime(t)
	require.Equal(t, 0, rt.GetTid())
	require.Equal(t, 1, rt.GetTotalQuantums())
}

func TestRuntimeBlockUnknownThread(t *testing.T) {
	rt, _ := newTestRuntime(t)
	err := rt.Block(3)
	require.Error(t, err)
	require.True(t, IsCode(err, ErrNoSuchThread))
}

func TestRuntimeSleepRejectsMainThread(t *testing.T) {
	rt, _ := newTestRuntime(t)
	err := rt.Sleep(0, 1)
	require.Error(t, err)
	require.True(t, IsCode(err, ErrInvalidArgument))
}
