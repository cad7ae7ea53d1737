package meter

import "errors"

var (
	// ErrInvalidFix is returned when a position fix carries non-finite
	// or out-of-range coordinates. The fix is dropped and the engine
	// state is left unchanged.
	ErrInvalidFix = errors.New("invalid position fix")
)
