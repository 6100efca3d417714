package cmdstreamer

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/dakusui/cmdstreamer/lineio"
	"github.com/dakusui/cmdstreamer/stream"
)

// Process wires a launched child process to a stream.Selector.
//
// The child's stdout and stderr are exposed as lazy line sequences
// and its stdin as a line sink.  A Process also owns a Selector built
// from its Config: the stdin route feeds Config.Stdin to the child,
// the stdout route (the critical one) feeds the transformed stdout to
// Config.StdoutConsumer, and the stderr route does the same for
// stderr, non-critically.  Driving that Selector to completion runs
// the whole pipeline; the Selector returns once stdout has drained,
// even if stdin is still being written, and that is intentional.
//
// A Process is running until its child is observed to exit (WaitFor)
// or it is destroyed (Destroy); the two terminal states differ only
// in how they treat further calls.
type Process struct {
	id      string
	shell   Shell
	command string
	config  Config
	cmd     *exec.Cmd

	stdout stream.Sequence
	stderr stream.Sequence
	stdin  stream.Sink

	selector *stream.Selector

	mu    sync.Mutex
	state procState

	waitOnce sync.Once
	done     chan struct{}
	exitCode int
	waitErr  error
}

// New launches `shell.Program shell.Options... command` and wraps the
// child's three standard streams per config.  The returned Process is
// running; an error here means the child could not be started, and no
// resources are left behind.
func New(shell Shell, command string, config Config) (*Process, error) {
	if err := shell.Validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	cmd := exec.Command(shell.Program, shell.args(command)...)
	cmd.Dir = config.WorkingDir

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: getting stdIn for %q; %v",
			ErrLaunch, shell.Program, err)
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: getting stdOut for %q; %v",
			ErrLaunch, shell.Program, err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: getting stdErr for %q; %v",
			ErrLaunch, shell.Program, err)
	}
	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: trying to start %s; %v",
			ErrLaunch, shell, err)
	}

	p := &Process{
		id:      uuid.NewString(),
		shell:   shell,
		command: command,
		config:  config,
		cmd:     cmd,
		done:    make(chan struct{}),
		state:   &stateRunning{},
	}
	p.stdout = lineio.NewSequence(stdoutPipe, config.Charset)
	p.stderr = lineio.NewSequence(stderrPipe, config.Charset)
	p.stdin = lineio.NewSink(stdinPipe, config.Charset, config.CommandTerminator)

	outSeq := p.stdout
	if config.StdoutCapacity > 0 {
		outSeq = stream.Buffer(outSeq, config.StdoutCapacity)
	}
	errSeq := p.stderr
	if config.StderrCapacity > 0 {
		errSeq = stream.Buffer(errSeq, config.StderrCapacity)
	}
	p.selector = stream.NewSelector(
		stream.Route{
			Name:     "stdin",
			Producer: config.Stdin,
			Consumer: p.stdin,
		},
		stream.Route{
			Name:     "stdout",
			Producer: config.StdoutTransformer(outSeq),
			Consumer: config.StdoutConsumer,
			Critical: true,
		},
		stream.Route{
			Name:     "stderr",
			Producer: config.StderrTransformer(errSeq),
			Consumer: config.StderrConsumer,
		},
	)
	logger.Debugw("process started",
		"id", p.id, "shell", shell.String(), "command", command,
		"pid", cmd.Process.Pid)
	return p, nil
}

// Stdout returns the child's stdout as a line sequence, before any
// Config transform; transforms apply only inside the Selector.
// Single consumer: do not pull this while the Selector runs.
func (p *Process) Stdout() stream.Sequence { return p.stdout }

// Stderr is like Stdout, for stderr.
func (p *Process) Stderr() stream.Sequence { return p.stderr }

// Stdin returns the line sink feeding the child's stdin.  Ending it
// closes the pipe, so the child sees EOF.
func (p *Process) Stdin() stream.Sink { return p.stdin }

// Selector returns the selector an orchestrator drives to run the
// pipeline to completion.
func (p *Process) Selector() *stream.Selector { return p.selector }

// Config returns the configuration this Process was built with,
// defaults applied.
func (p *Process) Config() Config { return p.config }

// WaitFor blocks until the child exits and returns its exit code.
// Safe to call from several goroutines; all observe the same result.
func (p *Process) WaitFor() (int, error) {
	p.waitOnce.Do(func() {
		err := p.cmd.Wait()
		var ee *exec.ExitError
		switch {
		case err == nil:
			p.exitCode = p.cmd.ProcessState.ExitCode()
		case errors.As(err, &ee):
			// A non-zero exit is a result, not an error.
			p.exitCode = ee.ExitCode()
		default:
			p.exitCode, p.waitErr = -1, err
		}
		close(p.done)
		logger.Debugw("process exited", "id", p.id, "code", p.exitCode)
	})
	<-p.done
	return p.exitCode, p.waitErr
}

// ExitValue returns the child's exit code once WaitFor has observed
// the child exit, and ErrNotExited otherwise.  It does not poll the
// OS itself: a child that has exited but has not been waited for
// still reports ErrNotExited.
func (p *Process) ExitValue() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var code int
	var err error
	p.state, code, err = p.state.exitValue(p)
	return code, err
}

// Destroy signals the child, then closes stdin, stdout and stderr in
// that fixed order.  Every close step executes even if an earlier one
// failed; the errors are aggregated.  Destroying twice is harmless.
func (p *Process) Destroy() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var err error
	p.state, err = p.state.destroy(p)
	return err
}

// Pid returns the OS process id of the child, best effort.
func (p *Process) Pid() (int, error) {
	if p.cmd.Process == nil {
		return 0, ErrPidUnavailable
	}
	return p.cmd.Process.Pid, nil
}

func (p *Process) String() string {
	return fmt.Sprintf("Process[%.8s]:%s %s", p.id, p.shell, p.command)
}

// signalAndClose is the shared teardown used by the destroy states.
// The close order matters: stdin first, so a child blocked reading it
// sees EOF before we tear down its output side.
func (p *Process) signalAndClose(signal bool) error {
	var err error
	if signal && p.cmd.Process != nil {
		if serr := p.cmd.Process.Signal(syscall.SIGTERM); serr != nil &&
			!errors.Is(serr, os.ErrProcessDone) {
			err = serr
		}
		// Reap the child so it doesn't linger as a zombie.
		go func() { _, _ = p.WaitFor() }()
	}
	err = multierr.Append(err, suppressClosed(p.stdin.End()))
	err = multierr.Append(err, suppressClosed(p.stdout.Close()))
	err = multierr.Append(err, suppressClosed(p.stderr.Close()))
	if err != nil {
		logger.Debugw("destroy finished with errors", "id", p.id, "err", err)
	}
	return err
}

// suppressClosed drops the error that comes from racing the exec
// package's own cleanup of the child's pipes.
func suppressClosed(err error) error {
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}
