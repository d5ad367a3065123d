package core

import "errors"

// ErrExit is the sentinel a handler returns to ask the event loop to stop
// cleanly. It is never itself logged as a failure.
var ErrExit = errors.New("core: exit requested")
