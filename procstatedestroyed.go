package cmdstreamer

// stateDestroyed implements the state of a Process after Destroy.
type stateDestroyed struct{}

func (st *stateDestroyed) exitValue(p *Process) (procState, int, error) {
	select {
	case <-p.done:
		return st, p.exitCode, p.waitErr
	default:
		return st, 0, ErrNotExited
	}
}

func (st *stateDestroyed) destroy(*Process) (procState, error) {
	// Already destroyed; nothing left to signal or close.
	return st, nil
}
