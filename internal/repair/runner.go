package repair

import (
	"context"
	"errors"
	"os/exec"
)

// Par2Command is the erasure-coding tool the store drives. It must be on
// PATH; availability problems surface as runner errors, not as verification
// results.
const Par2Command = "par2"

// Runner executes the external PAR2 toolchain in a given directory. The
// directory is explicit call state; the process working directory is never
// changed. A failing tool exit status is an expected outcome (exitOK false),
// only the inability to run the tool at all is an error.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (exitOK bool, output []byte, err error)
}

// Par2Runner runs the real par2 binary.
type Par2Runner struct{}

func (Par2Runner) Run(ctx context.Context, dir string, args ...string) (bool, []byte, error) {
	command := exec.CommandContext(ctx, Par2Command, args...)
	command.Dir = dir
	output, err := command.CombinedOutput()
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return false, output, nil
	}
	if err != nil {
		return false, output, err
	}
	return true, output, nil
}
