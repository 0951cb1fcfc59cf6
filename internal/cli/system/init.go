package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/config"
)

type InitCmd struct {
	Force bool `help:"Delete the existing store before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if c.Force {
		if _, err := os.Stat(path); err == nil {
			// Close first so the file is not held open
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized habitual storage at: %s\n", path)

	if ctx.Config == nil || ctx.Config.Dir == "" {
		return nil
	}
	if _, err := os.Stat(ctx.Config.Path()); err == nil {
		return nil
	}
	written, err := config.Write(ctx.Config.Dir, ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("Wrote default config to: %s\n", written)
	return nil
}
