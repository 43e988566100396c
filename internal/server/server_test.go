package server

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avolkov/ledsrv/internal/client"
	"github.com/avolkov/ledsrv/internal/command"
	"github.com/avolkov/ledsrv/internal/fifo"
	"github.com/avolkov/ledsrv/internal/led"
	"github.com/avolkov/ledsrv/internal/view"
)

func startServer(t *testing.T, dir string, sink view.Sink) (cancel func()) {
	t.Helper()

	ctx, cancelCtx := context.WithCancel(context.Background())
	srv := New(dir, command.NewDispatcher(sink, nil), nil)

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		alive, err := client.Probe(dir)
		return err == nil && alive
	}, 2*time.Second, 10*time.Millisecond, "daemon never started listening")

	return func() {
		cancelCtx()
		require.NoError(t, <-done)

		// The rendezvous artifact is removed on shutdown.
		_, err := os.Stat(fifo.RendezvousPath(dir))
		require.ErrorIs(t, err, os.ErrNotExist)
	}
}

func exchange(t *testing.T, dir string, pid int, requests []string) []string {
	t.Helper()

	session, err := client.Connect(dir, pid)
	require.NoError(t, err)
	defer func() { require.NoError(t, session.Close()) }()

	responses, err := session.Exchange(requests)
	require.NoError(t, err)
	return responses
}

func TestServeOneClientBatch(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var notified []led.State
	sink := view.Func(func(state led.State) {
		mu.Lock()
		defer mu.Unlock()
		notified = append(notified, state)
	})

	stop := startServer(t, dir, sink)
	defer stop()

	responses := exchange(t, dir, os.Getpid(), []string{
		"set-led-color blue",
		"get-led-color",
		"set-led-rate 9",
		"get-led-rate",
	})
	require.Equal(t, []string{"OK", "OK blue", "FAILED", "OK 1"}, responses)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, notified, 1)
	require.Equal(t, led.Blue, notified[0].Color)

	// The client-owned channels are removed once the session closes.
	_, err := os.Stat(fifo.InboundPath(dir, os.Getpid()))
	require.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(fifo.OutboundPath(dir, os.Getpid()))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestStatePersistsAcrossSessions(t *testing.T) {
	dir := t.TempDir()
	stop := startServer(t, dir, nil)
	defer stop()

	first := exchange(t, dir, 4001, []string{"set-led-state on", "set-led-rate 3"})
	require.Equal(t, []string{"OK", "OK"}, first)

	second := exchange(t, dir, 4002, []string{"get-led-state", "get-led-rate"})
	require.Equal(t, []string{"OK on", "OK 3"}, second)
}

func TestSequentialIsolation(t *testing.T) {
	dir := t.TempDir()
	stop := startServer(t, dir, nil)
	defer stop()

	// Each client sets its own rate and immediately reads it back in the
	// same batch. Interleaved servicing would let one client observe the
	// other's rate.
	var wg sync.WaitGroup
	results := make([][]string, 2)
	for i, rate := range []string{"2", "3"} {
		wg.Add(1)
		go func(slot int, rate string) {
			defer wg.Done()
			results[slot] = exchange(t, dir, 5001+slot, []string{
				"set-led-rate " + rate,
				"get-led-rate",
			})
		}(i, rate)
	}
	wg.Wait()

	require.Equal(t, []string{"OK", "OK 2"}, results[0])
	require.Equal(t, []string{"OK", "OK 3"}, results[1])
}

func TestMalformedIdentityIsIsolated(t *testing.T) {
	dir := t.TempDir()
	stop := startServer(t, dir, nil)
	defer stop()

	// Push garbage into the rendezvous channel; the listener must skip it
	// and keep serving real clients.
	rendezvous, err := fifo.Open(fifo.RendezvousPath(dir), fifo.WriteEnd, false)
	require.NoError(t, err)
	_, err = rendezvous.Write([]byte("not-a-pid\n"))
	require.NoError(t, err)
	require.NoError(t, rendezvous.Close())

	responses := exchange(t, dir, 6001, []string{"get-led-color"})
	require.Equal(t, []string{"OK red"}, responses)
}
