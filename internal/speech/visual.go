package speech

import (
	"context"
	"time"
)

// DefaultDisplayDuration is how long the visual fallback shows the text.
const DefaultDisplayDuration = 2 * time.Second

// Display shows text on screen.
type Display interface {
	Show(text string)
	Hide()
}

// Visual shows the text for a fixed duration. It never fails.
type Visual struct {
	Display  Display
	Duration time.Duration
}

func (v *Visual) Name() string { return "visual" }

// Present returns after Duration, or earlier if ctx is cancelled. Either
// way the text was shown, so it reports success.
func (v *Visual) Present(ctx context.Context, text string) error {
	d := v.Duration
	if d <= 0 {
		d = DefaultDisplayDuration
	}
	v.Display.Show(text)
	_ = sleep(ctx, d)
	v.Display.Hide()
	return nil
}

type discardDisplay struct{}

func (discardDisplay) Show(string) {}
func (discardDisplay) Hide()       {}
