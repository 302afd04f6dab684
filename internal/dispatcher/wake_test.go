package dispatcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWakeCondTimesOutWithoutSignal(t *testing.T) {
	w := newWakeCond()
	start := time.Now()
	woken := w.wait(30 * time.Millisecond)
	require.False(t, woken)
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestWakeCondReturnsEarlyOnSignal(t *testing.T) {
	w := newWakeCond()
	go func() {
		time.Sleep(10 * time.Millisecond)
		w.signal()
	}()

	start := time.Now()
	woken := w.wait(time.Second)
	require.True(t, woken)
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestWakeCondSignalIsPermanent(t *testing.T) {
	w := newWakeCond()
	w.signal()

	require.True(t, w.wait(time.Millisecond))
	require.True(t, w.wait(time.Millisecond))
}
