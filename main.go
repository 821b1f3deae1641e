package main

import (
	"context"
	"fmt"
	"os"

	"github.com/km-arc/go-tourism/app/providers"
	"github.com/km-arc/go-tourism/framework/app"
	"github.com/km-arc/go-tourism/framework/container"
	fwproviders "github.com/km-arc/go-tourism/framework/providers"
	"github.com/km-arc/go-tourism/site"
)

func main() {
	application := app.New() // loads .env automatically

	application.Register(&fwproviders.ViewServiceProvider{FS: site.Views()})
	application.Register(&providers.FormsServiceProvider{})
	application.Register(&providers.SiteServiceProvider{})
	application.Boot()

	sessions := container.Resolve[*site.Sessions](application.Container, "sessions")
	application.Background(sessions.Run)

	if err := application.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
