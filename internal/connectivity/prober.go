package connectivity

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aaravmahajanofficial/inventory-client/internal/models"
)

type Prober struct {
	state     *State
	probe     ProbeFunc
	onOffline func(ctx context.Context)
	logger    *slog.Logger

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

type ProberOption func(*Prober)

// OnOffline registers fn to run once, before the state turns Offline.
func OnOffline(fn func(ctx context.Context)) ProberOption {
	return func(p *Prober) { p.onOffline = fn }
}

func WithProberLogger(logger *slog.Logger) ProberOption {
	return func(p *Prober) { p.logger = logger }
}

func NewProber(state *State, probe ProbeFunc, opts ...ProberOption) *Prober {
	p := &Prober{
		state:  state,
		probe:  probe,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Start runs the probe in the background. Only the first call has an effect.
func (p *Prober) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || p.stopped {
		return
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.settle(ctx, p.probe(ctx))
	}()
}

func (p *Prober) settle(ctx context.Context, mode models.Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		p.logger.Debug("Probe settled after stop, result discarded", slog.String("mode", string(mode)))
		return
	}

	if p.state.Mode().Resolved() {
		return
	}

	if mode == models.ModeOffline && p.onOffline != nil {
		p.onOffline(ctx)
	}

	if p.state.Resolve(mode) {
		p.logger.Info("Connectivity mode resolved", slog.String("mode", string(mode)))
	}
}

// Stop cancels a pending probe and waits for its goroutine. Results that
// arrive afterwards never reach the state.
func (p *Prober) Stop() {
	p.mu.Lock()
	p.stopped = true
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()

	p.wg.Wait()
}
