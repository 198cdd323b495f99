package speech

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrExhausted is returned when every strategy failed. With a Visual
// strategy at the end of the list this cannot happen.
var ErrExhausted = errors.New("all presentation strategies failed")

// Strategy is one way of conveying text to the player.
type Strategy interface {
	// Name identifies the strategy in logs and results.
	Name() string

	// Present blocks until the presentation finished (nil) or failed.
	// A failure moves the resolver on to the next strategy.
	Present(ctx context.Context, text string) error
}

// Attempt is the outcome of one strategy: played when Err is nil.
type Attempt struct {
	Strategy string
	Err      error
}

// Played reports whether the attempt delivered the presentation.
func (a Attempt) Played() bool { return a.Err == nil }

// AttemptError wraps the failure of a single strategy.
type AttemptError struct {
	Strategy string
	Err      error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Err)
}

func (e *AttemptError) Unwrap() error { return e.Err }

// Result describes a finished presentation request.
type Result struct {
	// Strategy is the name of the strategy that succeeded.
	Strategy string

	// Attempts lists every strategy tried, in order.
	Attempts []Attempt
}

// Resolver tries strategies in order until one succeeds.
type Resolver struct {
	strategies []Strategy
	log        *zap.Logger
}

// NewResolver returns a Resolver over strategies. A nil logger discards.
func NewResolver(log *zap.Logger, strategies ...Strategy) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{strategies: strategies, log: log}
}

// Strategies returns the names of the strategies in the order tried.
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}

// Resolve presents text. Strategy failures are recorded in the result and
// never returned on their own; the error is ErrExhausted (joined with each
// failure) or the context error if the request was cancelled.
func (r *Resolver) Resolve(ctx context.Context, text string) (Result, error) {
	var res Result
	var errs []error

	for _, s := range r.strategies {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		err := s.Present(ctx, text)
		res.Attempts = append(res.Attempts, Attempt{Strategy: s.Name(), Err: err})
		if err == nil {
			res.Strategy = s.Name()
			r.log.Debug("presented",
				zap.String("text", text),
				zap.String("strategy", s.Name()),
				zap.Int("attempts", len(res.Attempts)))
			return res, nil
		}
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		r.log.Debug("presentation attempt failed",
			zap.String("text", text),
			zap.String("strategy", s.Name()),
			zap.Error(err))
		errs = append(errs, &AttemptError{Strategy: s.Name(), Err: err})
	}

	return res, errors.Join(append([]error{ErrExhausted}, errs...)...)
}
