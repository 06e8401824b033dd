package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/mshimizu/kintai/internal/client/api"
	"github.com/mshimizu/kintai/internal/client/config"
)

type App struct {
	config *config.Config
	api    *api.Client
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerURL, c.RequestTimeout),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Attendance CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, scanner)
}
