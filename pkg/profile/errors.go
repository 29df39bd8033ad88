package profile

import "errors"

// ErrShapeMismatch is returned when a raw payload lacks the structure a rule unwraps.
var ErrShapeMismatch = errors.New("profile: payload shape mismatch")
