package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/augcode13-glitch/paapimg/internal/config"
	"github.com/augcode13-glitch/paapimg/internal/logger"
	"github.com/augcode13-glitch/paapimg/internal/messaging/payloads"
	"github.com/augcode13-glitch/paapimg/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu       sync.Mutex
	payloads []payloads.RefillRequestPayload
	closed   int
}

func (p *recordingPublisher) PublishRefillRequest(_ context.Context, payload payloads.RefillRequestPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *recordingPublisher) StartConsumingRefillRequests(context.Context, func(context.Context, payloads.RefillRequestPayload) error) error {
	return nil
}

func (p *recordingPublisher) Close() error {
	p.closed++
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

type fakeRefill struct {
	opts usecase.RefillOptions
	err  error
}

func (f *fakeRefill) Refill(_ context.Context, opts usecase.RefillOptions) (usecase.RefillResult, error) {
	f.opts = opts
	if f.err != nil {
		return usecase.RefillResult{RunID: opts.RunID, Message: f.err.Error()}, f.err
	}
	return usecase.RefillResult{Success: true, Count: 3, RunID: opts.RunID}, nil
}

func TestPublishLoop_PublishesImmediatelyAndOnTick(t *testing.T) {
	pub := &recordingPublisher{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		publishLoop(ctx, pub, 10*time.Millisecond, logger.Discard())
		close(done)
	}()

	require.Eventually(t, func() bool { return pub.count() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Equal(t, "scheduler", pub.payloads[0].Source)
	assert.NotEqual(t, pub.payloads[0].RequestID, pub.payloads[1].RequestID)
}

func TestRefillMessageHandler(t *testing.T) {
	refill := &fakeRefill{}
	handle := refillMessageHandler(refill, logger.Discard())

	err := handle(context.Background(), payloads.RefillRequestPayload{RequestID: "req-1", Quota: 200})
	require.NoError(t, err)
	assert.Equal(t, "req-1", refill.opts.RunID)
	assert.Equal(t, 200, refill.opts.Quota)

	refill.err = errors.New("pexels down")
	assert.Error(t, handle(context.Background(), payloads.RefillRequestPayload{RequestID: "req-2"}))
}

func TestRun_ModeRequirements(t *testing.T) {
	cfg := &config.Config{}
	cfg.Refill.Interval = time.Hour

	tests := []struct {
		name string
		mode string
	}{
		{name: "unknown mode", mode: "batch"},
		{name: "worker without queue", mode: ModeWorker},
		{name: "scheduler without queue", mode: ModeScheduler},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewApp(cfg, logger.Discard(), Components{Refill: &fakeRefill{}})
			assert.Error(t, a.Run(context.Background(), tt.mode))
		})
	}
}

func TestRun_RefillOnce(t *testing.T) {
	refill := &fakeRefill{}
	a := NewApp(&config.Config{}, logger.Discard(), Components{Refill: refill})
	require.NoError(t, a.Run(context.Background(), ModeRefill))

	refill.err = errors.New("no photos")
	assert.Error(t, a.Run(context.Background(), ModeRefill))
}

func TestShutdown_ClosesSharedClientOnce(t *testing.T) {
	pub := &recordingPublisher{}
	a := NewApp(&config.Config{}, logger.Discard(), Components{Publisher: pub, Consumer: pub})

	require.NoError(t, a.Shutdown())
	assert.Equal(t, 1, pub.closed)
}
