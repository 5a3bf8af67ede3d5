package submit

import "errors"

// ErrUnknownMode is returned by New for an unsupported submit mode.
var ErrUnknownMode = errors.New("unknown submit mode")
