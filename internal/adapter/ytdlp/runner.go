package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/souravslg/Downfiles/internal/metrics"
)

// termGrace is how long a signalled process gets to exit before it is
// killed outright.
const termGrace = 5 * time.Second

// run supervises one extractor invocation. Stdout and stderr are
// forwarded incrementally to the sinks (either may be nil). The exit
// code is returned for nonzero exits; err is reserved for spawn
// failures and context cancellation.
func (e *Extractor) run(ctx context.Context, args []string, onStdout, onStderr func([]byte)) (int, error) {
	argv := append(append([]string(nil), e.tool.YtDlp...), args...)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Cancel = func() error {
		// Ask nicely first; WaitDelay escalates to SIGKILL.
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = termGrace

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return 0, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", argv[0], err)
	}

	metrics.ExtractionsActive.Inc()
	defer metrics.ExtractionsActive.Dec()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		forward(stdout, onStdout)
	}()
	go func() {
		defer wg.Done()
		forward(stderr, onStderr)
	}()
	wg.Wait()

	waitErr := cmd.Wait()
	if ctx.Err() != nil {
		return 0, context.Cause(ctx)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, waitErr
	}
	return 0, nil
}

// forward copies a pipe to a sink chunk by chunk until EOF. The sink
// must not retain the slice.
func forward(r io.Reader, sink func([]byte)) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 && sink != nil {
			sink(buf[:n])
		}
		if err != nil {
			return
		}
	}
}
