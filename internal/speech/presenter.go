package speech

import (
	"context"
	"sync"
	"time"
)

// ResultFunc receives the outcome of the current presentation request.
type ResultFunc func(text string, res Result, err error)

// Presenter runs one presentation at a time in the background. Starting a
// new presentation cancels the previous one; results of superseded
// requests are dropped so a stale word is never reported after the next
// question has loaded.
type Presenter struct {
	resolver *Resolver
	delay    time.Duration
	onResult ResultFunc

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPresenter returns a Presenter that waits delay before each
// presentation. onResult may be nil; it is called with the Presenter's
// lock held and must not call Present or Stop.
func NewPresenter(resolver *Resolver, delay time.Duration, onResult ResultFunc) *Presenter {
	return &Presenter{resolver: resolver, delay: delay, onResult: onResult}
}

// Present starts presenting text and returns the request's generation.
func (p *Presenter) Present(ctx context.Context, text string) uint64 {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.gen++
	gen := p.gen
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()

		if err := sleep(ctx, p.delay); err != nil {
			return
		}
		res, err := p.resolver.Resolve(ctx, text)

		p.mu.Lock()
		defer p.mu.Unlock()
		if gen != p.gen || ctx.Err() != nil {
			return
		}
		if p.onResult != nil {
			p.onResult(text, res, err)
		}
	}()
	return gen
}

// Generation returns the generation of the most recent request.
func (p *Presenter) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}

// Stop cancels the request in flight, if any, and invalidates its result.
func (p *Presenter) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
}

// Wait blocks until every started presentation goroutine has returned.
func (p *Presenter) Wait() {
	p.wg.Wait()
}
