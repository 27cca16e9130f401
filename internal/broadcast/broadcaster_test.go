package broadcast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingPacer struct {
	waits int
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	return ctx.Err()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunTalliesFailuresWithoutAborting(t *testing.T) {
	recipients := []int64{1, 2, 3, 4, 5}
	unreachable := map[int64]bool{2: true, 4: true}

	var attempts []int64
	send := func(ctx context.Context, id int64) error {
		attempts = append(attempts, id)
		if unreachable[id] {
			return errors.New("blocked by recipient")
		}
		return nil
	}

	pacer := &countingPacer{}
	b := New(pacer, testLogger())

	result := b.Run(context.Background(), recipients, send)

	require.Equal(t, 3, result.Sent)
	require.Equal(t, 2, result.Failed)
	require.Equal(t, recipients, attempts, "every recipient must be attempted")
	require.Equal(t, len(recipients), pacer.waits, "every send must be paced")
}

func TestRunEmptyRecipients(t *testing.T) {
	b := New(&countingPacer{}, testLogger())

	result := b.Run(context.Background(), nil, func(ctx context.Context, id int64) error {
		t.Fatal("send must not be called")
		return nil
	})

	require.Zero(t, result.Sent)
	require.Zero(t, result.Failed)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := New(&countingPacer{}, testLogger())

	result := b.Run(ctx, []int64{1, 2, 3}, func(ctx context.Context, id int64) error {
		t.Fatal("send must not be called after cancellation")
		return nil
	})

	require.Zero(t, result.Sent)
	require.Equal(t, 3, result.Failed)
}

func TestRatePacerAllowsFirstSendImmediately(t *testing.T) {
	pacer := NewRatePacer(1000)

	start := time.Now()
	require.NoError(t, pacer.Wait(context.Background()))
	require.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestRatePacerSpacesConsecutiveWaits(t *testing.T) {
	pacer := NewRatePacer(50) // 20ms interval

	ctx := context.Background()
	require.NoError(t, pacer.Wait(ctx))

	start := time.Now()
	require.NoError(t, pacer.Wait(ctx))
	require.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
