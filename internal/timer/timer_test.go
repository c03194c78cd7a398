package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManualDriverFiresOnlyOnDemand(t *testing.T) {
	d := NewManualDriver()
	ticks := 0
	require.NoError(t, d.Configure(time.Millisecond, func() { ticks++ }))

	require.Equal(t, 0, ticks)
	d.Fire()
	require.Equal(t, 1, ticks)
	d.Fire()
	d.Fire()
	require.Equal(t, 3, ticks)

	d.Stop()
	d.Fire()
	require.Equal(t, 3, ticks, "ticks after Stop must not be delivered")
}

func TestTickerDriverDeliversTicks(t *testing.T) {
	d := NewTickerDriver()
	ticks := make(chan struct{}, 8)
	require.NoError(t, d.Configure(5*time.Millisecond, func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	}))
	defer d.Stop()

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("ticker driver never fired")
	}
}

func TestTickerDriverStopIsIdempotent(t *testing.T) {
	d := NewTickerDriver()
	require.NoError(t, d.Configure(time.Millisecond, func() {}))
	d.Stop()
	d.Stop()
}
