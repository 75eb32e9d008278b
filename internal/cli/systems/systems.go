package systems

import (
	"fmt"
	"strings"

	"github.com/julianstephens/rythm/internal/cli"
	"github.com/julianstephens/rythm/internal/constants"
	"github.com/julianstephens/rythm/internal/tui"
)

type SystemCmd struct {
	Add     SystemAddCmd     `cmd:"" help:"Add a new system."`
	List    SystemListCmd    `cmd:"" help:"List systems." default:"1"`
	Edit    SystemEditCmd    `cmd:"" help:"Edit a system."`
	Pause   SystemPauseCmd   `cmd:"" help:"Pause a system without losing its history."`
	Resume  SystemResumeCmd  `cmd:"" help:"Resume a paused system."`
	Delete  SystemDeleteCmd  `cmd:"" help:"Delete a system and its logs (soft delete)."`
	Restore SystemRestoreCmd `cmd:"" help:"Restore a deleted system."`
}

type SystemAddCmd struct {
	Name     string `arg:"" optional:"" help:"System name. Omit to fill in a form."`
	Trigger  string `help:"When the system happens, e.g. 'after coffee'."`
	Full     string `help:"The full-effort action."`
	Survival string `help:"The minimal action for hard days."`
}

func (c *SystemAddCmd) Run(ctx *cli.Context) error {
	form := tui.SystemForm{Name: c.Name, Trigger: c.Trigger, FullAction: c.Full, SurvivalAction: c.Survival}
	if form.Incomplete() {
		if err := tui.NewSystemForm(&form).Run(); err != nil {
			return err
		}
	}

	sys, err := ctx.Tracker.AddSystem(form.System())
	if err != nil {
		return err
	}
	fmt.Printf("Added system: %s\n", sys.Name)
	return nil
}

type SystemListCmd struct {
	Paused  bool `help:"Include paused systems." default:"true" negatable:""`
	Deleted bool `help:"Include deleted systems."`
}

func (c *SystemListCmd) Run(ctx *cli.Context) error {
	systems, err := ctx.Store.GetAllSystems(ctx.Tracker.UserID(), c.Paused, c.Deleted)
	if err != nil {
		return err
	}
	if len(systems) == 0 {
		fmt.Println("No systems found. Add one with 'rythm system add'.")
		return nil
	}

	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return err
	}

	for _, sys := range systems {
		marker := ""
		switch {
		case sys.DeletedAt != nil:
			marker = " [DELETED]"
		case sys.Paused:
			marker = " [PAUSED]"
		}
		fmt.Printf("%s%s\n", cli.HeaderStyle.Render(sys.Name), marker)
		if sys.Trigger != "" {
			fmt.Printf("  When:     %s\n", sys.Trigger)
		}
		fmt.Printf("  Full:     %s\n", sys.FullAction)
		if settings.SurvivalMode {
			fmt.Printf("  Survival: %s\n", cli.WarnStyle.Render(sys.SurvivalAction))
		} else {
			fmt.Printf("  Survival: %s\n", sys.SurvivalAction)
		}
		fmt.Printf("  ID:       %s\n", sys.ID)
	}

	active := 0
	for _, sys := range systems {
		if sys.DeletedAt == nil {
			active++
		}
	}
	fmt.Printf("\n%d/%d systems\n", active, constants.MaxSystems)
	return nil
}

type SystemEditCmd struct {
	System   string  `arg:"" help:"System name or ID."`
	Name     *string `help:"New name."`
	Trigger  *string `help:"New trigger."`
	Full     *string `help:"New full action."`
	Survival *string `help:"New survival action."`
}

func (c *SystemEditCmd) Run(ctx *cli.Context) error {
	sys, err := ctx.Tracker.FindSystem(c.System)
	if err != nil {
		return err
	}

	if c.Name == nil && c.Trigger == nil && c.Full == nil && c.Survival == nil {
		form := tui.SystemFormFrom(sys)
		if err := tui.NewSystemForm(&form).Run(); err != nil {
			return err
		}
		sys = form.ApplyTo(sys)
	} else {
		if c.Name != nil {
			sys.Name = strings.TrimSpace(*c.Name)
		}
		if c.Trigger != nil {
			sys.Trigger = *c.Trigger
		}
		if c.Full != nil {
			sys.FullAction = *c.Full
		}
		if c.Survival != nil {
			sys.SurvivalAction = *c.Survival
		}
	}

	if err := ctx.Tracker.UpdateSystem(sys); err != nil {
		return err
	}
	fmt.Printf("Updated system: %s\n", sys.Name)
	return nil
}

type SystemPauseCmd struct {
	System string `arg:"" help:"System name or ID."`
}

func (c *SystemPauseCmd) Run(ctx *cli.Context) error {
	sys, err := ctx.Tracker.SetPaused(c.System, true)
	if err != nil {
		return err
	}
	fmt.Printf("Paused system: %s\n", sys.Name)
	return nil
}

type SystemResumeCmd struct {
	System string `arg:"" help:"System name or ID."`
}

func (c *SystemResumeCmd) Run(ctx *cli.Context) error {
	sys, err := ctx.Tracker.SetPaused(c.System, false)
	if err != nil {
		return err
	}
	fmt.Printf("Resumed system: %s\n", sys.Name)
	return nil
}

type SystemDeleteCmd struct {
	System string `arg:"" help:"System name or ID."`
}

func (c *SystemDeleteCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	sys, err := ctx.Tracker.DeleteSystem(c.System)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted system: %s (restore with 'rythm system restore %s')\n", sys.Name, sys.ID)
	return nil
}

type SystemRestoreCmd struct {
	ID string `arg:"" help:"ID of the deleted system."`
}

func (c *SystemRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.RestoreSystem(c.ID); err != nil {
		return err
	}
	sys, err := ctx.Tracker.FindSystem(c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Restored system: %s\n", sys.Name)
	return nil
}
