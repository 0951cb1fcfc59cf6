package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/habitual/internal/api"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on; defaults to api.addr from the config."`
}

func (c *ServeCmd) addr(ctx *cli.Context) string {
	switch {
	case c.Addr != "":
		return c.Addr
	case ctx.Config != nil && ctx.Config.API.Addr != "":
		return ctx.Config.API.Addr
	default:
		return constants.DefaultAPIAddress
	}
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Open()
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := c.addr(ctx)
	fmt.Printf("Serving habitual API on http://%s\n", addr)
	return api.New(t, ctx.Store).Listen(runCtx, addr)
}
