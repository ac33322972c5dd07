package projectprovisioner

import (
	"context"

	"github.com/devantler-tech/snapp/pkg/notify"
)

// step is one labeled unit of the scaffolding pipeline.
type step struct {
	label string
	run   func(ctx context.Context) error
}

// runStep runs s behind a spinner and marks it succeeded or failed.
// The spinner is always stopped before runStep returns.
func (p *Provisioner) runStep(ctx context.Context, s step) error {
	spinner := notify.NewSpinner(s.label, p.writer, p.spinnerOpts...).Start()
	defer spinner.Stop()

	err := ctx.Err()
	if err == nil {
		err = s.run(ctx)
	}

	if err != nil {
		spinner.Fail(s.label)

		return err
	}

	spinner.Succeed(s.label)

	if p.timer != nil {
		p.timer.NewStage()
	}

	return nil
}
