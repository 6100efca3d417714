package cmdstreamer

import "errors"

// ErrLaunch is wrapped by every error New returns once the Shell has
// validated: the child process could not be started, and the handle
// was never created.
var ErrLaunch = errors.New("launch failure")

// ErrNotExited is returned by ExitValue until WaitFor has observed
// the child exit; callers may retry or use WaitFor.
var ErrNotExited = errors.New("process has not exited")

// ErrPidUnavailable is returned by Pid when the handle has no
// underlying OS process to ask.  Callers must not assume a pid is
// available.
var ErrPidUnavailable = errors.New("process id unavailable")
