package tui

import "errors"

// ErrAborted is returned by Run when the user quits before the submit
// completes.
var ErrAborted = errors.New("wizard aborted")
