package speech

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultCheckTimeout bounds the capability check for engines that never
// report completion.
const DefaultCheckTimeout = time.Second

// checkText is spoken at zero volume to test the synthesis engine.
const checkText = "test"

// State is the outcome of the speech capability check.
type State int

const (
	Unknown State = iota
	Working
	Broken
)

func (s State) String() string {
	switch s {
	case Working:
		return "working"
	case Broken:
		return "broken"
	default:
		return "unknown"
	}
}

// Capability memoizes whether the synthesis engine produces speech on this
// machine. It moves from Unknown to Working or Broken once and stays there
// for its lifetime. Pass one handle to everything that speaks; tests
// create a fresh handle instead of resetting shared state.
//
// The handle cancels its synth when a check times out, so give it a
// synthesizer of its own rather than the one that speaks words.
type Capability struct {
	synth   Synthesizer
	timeout time.Duration

	// sem serializes checks and lets waiters give up on ctx; mu guards
	// state so State never waits on a check in flight.
	sem   chan struct{}
	mu    sync.Mutex
	state State
}

// NewCapability returns a handle in the Unknown state. A nil synth checks
// as Broken. A non-positive timeout uses DefaultCheckTimeout.
func NewCapability(synth Synthesizer, timeout time.Duration) *Capability {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Capability{synth: synth, timeout: timeout, sem: make(chan struct{}, 1)}
}

// State returns the current state without checking.
func (c *Capability) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Check speaks a zero-volume test utterance the first time it is called
// and memoizes the verdict. Later calls return the memoized state without
// touching the engine. Concurrent callers wait for the same check.
//
// The state stays Unknown, so a later call can try again, when ctx ends
// first or when the test utterance was interrupted by a Cancel it did not
// issue.
func (c *Capability) Check(ctx context.Context) State {
	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return c.State()
	}
	defer func() { <-c.sem }()

	if st := c.State(); st != Unknown {
		return st
	}
	if c.synth == nil {
		return c.settle(Broken)
	}

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- c.synth.Speak(cctx, Utterance{Text: checkText, Rate: 1, Pitch: 1, Volume: 0})
	}()

	select {
	case err := <-done:
		switch {
		case err == nil:
			return c.settle(Working)
		case ctx.Err() != nil, errors.Is(err, ErrInterrupted):
			return Unknown
		default:
			return c.settle(Broken)
		}
	case <-cctx.Done():
		if ctx.Err() != nil {
			return Unknown
		}
		// The engine never signalled completion.
		c.synth.Cancel()
		return c.settle(Broken)
	}
}

func (c *Capability) settle(s State) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
	return s
}
