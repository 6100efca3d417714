package cmdstreamer

// stateExited implements the state of a Process whose child has been
// observed to exit.
type stateExited struct {
	code int
}

func (st *stateExited) exitValue(p *Process) (procState, int, error) {
	return st, st.code, p.waitErr
}

func (st *stateExited) destroy(p *Process) (procState, error) {
	// The child is gone; there is nothing to signal, but the
	// streams still get their close pass.
	return &stateDestroyed{}, p.signalAndClose(false)
}
