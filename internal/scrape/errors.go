package scrape

import (
	"errors"
	"fmt"
)

// ErrNoListings is the terminal empty result: every rung of the retry ladder
// produced zero records. It must propagate to a non-zero exit so a broken
// extraction strategy is never mistaken for "nothing changed".
var ErrNoListings = errors.New("no listings extracted after exhausting the retry ladder")

// AttemptError wraps a failure of a single ladder attempt with the variant
// that produced it. Attempt errors escalate to the next rung; only ladder
// exhaustion surfaces to the caller.
type AttemptError struct {
	Variant string
	Err     error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("attempt %q failed: %v", e.Variant, e.Err)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}
