package speech

import (
	"context"
	"errors"
	"sync"
	"time"
)

// fakeSynth records utterances. When block is set, Speak waits for ctx
// instead of finishing.
type fakeSynth struct {
	mu       sync.Mutex
	spoken   []Utterance
	cancels  int
	err      error
	block    bool
	ignoreCx bool
	release  chan struct{}
	calls    []string
}

func (f *fakeSynth) Speak(ctx context.Context, u Utterance) error {
	f.mu.Lock()
	f.spoken = append(f.spoken, u)
	f.calls = append(f.calls, "speak")
	block, ignore, err := f.block, f.ignoreCx, f.err
	f.mu.Unlock()

	if ignore {
		<-f.release
		return nil
	}
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (f *fakeSynth) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
	f.calls = append(f.calls, "cancel")
}

func (f *fakeSynth) speakCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.spoken)
}

// fakePlayer fails for every path not in available.
type fakePlayer struct {
	mu        sync.Mutex
	available map[string]bool
	played    []string
}

var errNotFound = errors.New("no such file")

func (f *fakePlayer) Play(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, path)
	if !f.available[path] {
		return errNotFound
	}
	return nil
}

type fakeDisplay struct {
	mu     sync.Mutex
	shown  []string
	hidden int
}

func (d *fakeDisplay) Show(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown = append(d.shown, text)
}

func (d *fakeDisplay) Hide() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hidden++
}

// funcStrategy adapts a function to Strategy.
type funcStrategy struct {
	name string
	fn   func(ctx context.Context, text string) error
}

func (s funcStrategy) Name() string { return s.name }

func (s funcStrategy) Present(ctx context.Context, text string) error {
	return s.fn(ctx, text)
}

// killableSynth finishes each utterance after hold unless Cancel stops it
// first, the way a real engine process behaves.
type killableSynth struct {
	mu          sync.Mutex
	hold        time.Duration
	stop        chan struct{}
	finished    []string
	interrupted []string
}

func (k *killableSynth) Speak(ctx context.Context, u Utterance) error {
	stop := make(chan struct{})
	k.mu.Lock()
	k.stop = stop
	hold := k.hold
	k.mu.Unlock()

	var err error
	t := time.NewTimer(hold)
	defer t.Stop()
	select {
	case <-t.C:
	case <-stop:
		err = ErrInterrupted
	case <-ctx.Done():
		err = ctx.Err()
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if k.stop == stop {
		k.stop = nil
	}
	if errors.Is(err, ErrInterrupted) {
		k.interrupted = append(k.interrupted, u.Text)
	} else if err == nil {
		k.finished = append(k.finished, u.Text)
	}
	return err
}

func (k *killableSynth) Cancel() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.stop != nil {
		close(k.stop)
		k.stop = nil
	}
}

func (k *killableSynth) speaking() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.stop != nil
}
