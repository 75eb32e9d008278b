package system

import (
	"github.com/julianstephens/rythm/internal/cli"
	"github.com/julianstephens/rythm/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Back up on startup, after a successful load
	ctx.PerformAutomaticBackup()

	return tui.Run(ctx.Tracker)
}
