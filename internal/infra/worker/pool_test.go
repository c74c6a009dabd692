package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type stubSender struct {
	calls   atomic.Int32
	block   chan struct{}
	err     error
	panicOn string
}

func (s *stubSender) Execute(_ context.Context, provider string, _ entity.ConversionInput) (*entity.DispatchResult, error) {
	if s.block != nil {
		<-s.block
	}
	s.calls.Add(1)
	if provider == s.panicOn {
		panic("boom")
	}
	if s.err != nil {
		return nil, s.err
	}
	return &entity.DispatchResult{Success: true}, nil
}

func TestPool_ProcessesAllJobsBeforeShutdown(t *testing.T) {
	sender := &stubSender{}
	pool := NewPool(sender, 4, 50, nil)
	pool.Start(context.Background())

	for i := 0; i < 50; i++ {
		require.NoError(t, pool.Enqueue(context.Background(), entity.ConversionJob{Provider: entity.ProviderMeta}))
	}

	pool.Shutdown()
	assert.Equal(t, int32(50), sender.calls.Load())
}

func TestPool_EnqueueNeverBlocksWhenFull(t *testing.T) {
	sender := &stubSender{block: make(chan struct{})}
	pool := NewPool(sender, 1, 1, nil)
	pool.Start(context.Background())

	// o primeiro job ocupa o worker, o segundo a fila
	require.NoError(t, pool.Enqueue(context.Background(), entity.ConversionJob{}))
	require.Eventually(t, func() bool {
		return pool.Enqueue(context.Background(), entity.ConversionJob{}) == nil
	}, time.Second, 5*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- pool.Enqueue(context.Background(), entity.ConversionJob{}) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrQueueFull)
	case <-time.After(time.Second):
		t.Fatal("Enqueue bloqueou com a fila cheia")
	}

	close(sender.block)
	pool.Shutdown()
}

func TestPool_EnqueueAfterShutdown(t *testing.T) {
	pool := NewPool(&stubSender{}, 1, 1, nil)
	pool.Start(context.Background())
	pool.Shutdown()

	assert.ErrorIs(t, pool.Enqueue(context.Background(), entity.ConversionJob{}), ErrPoolClosed)
	// shutdown é idempotente
	pool.Shutdown()
}

func TestPool_ErrorsAndPanicsDoNotKillWorkers(t *testing.T) {
	sender := &stubSender{err: errors.New("falhou"), panicOn: "explode"}
	pool := NewPool(sender, 1, 10, nil)
	pool.Start(context.Background())

	var wg sync.WaitGroup
	for _, p := range []string{"explode", entity.ProviderMeta, "explode", entity.ProviderTikTok} {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			_ = pool.Enqueue(context.Background(), entity.ConversionJob{Provider: p})
		}(p)
	}
	wg.Wait()

	pool.Shutdown()
	assert.Equal(t, int32(4), sender.calls.Load())
}
