package release

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Executor abstracts external command execution so the pipeline can be
// driven by a fake in tests.
type Executor interface {
	// Run executes name with args in dir and returns the combined output.
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return string(out), fmt.Errorf("%s: %w", name, err)
		}
		return string(out), fmt.Errorf("%s: %w: %s", name, err, msg)
	}
	return string(out), nil
}
