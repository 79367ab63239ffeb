package matcalc

import "errors"

// Error kinds shared by every proportioning pipeline. Stage code wraps these
// with fmt.Errorf("...: %w", ...) so callers can classify failures with
// errors.Is while still reporting the offending value.
var (
	// ErrInvalidDensity reports a zero or negative density or relative
	// density where a division requires a positive one.
	ErrInvalidDensity = errors.New("invalid density")

	// ErrOutOfRangeLookup reports an input that falls outside a published
	// table, such as an unknown nominal maximum size or slump range.
	ErrOutOfRangeLookup = errors.New("lookup outside table range")

	// ErrInfeasibleMix reports proportions that cannot close the unit
	// volume, such as a non-positive residual fine-aggregate volume.
	ErrInfeasibleMix = errors.New("infeasible mix proportions")

	// ErrUnreachableConfiguration reports an input combination no design
	// branch accepts, such as neither standard-deviation mode enabled.
	ErrUnreachableConfiguration = errors.New("unreachable configuration")

	// ErrMissingRequiredField reports a design-input field that is absent
	// or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
