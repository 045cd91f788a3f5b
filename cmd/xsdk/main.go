// Command xsdk drives the XCOM 2 SDK from the command line: it creates mods
// from the SDK's templates, compiles and cooks them, and deploys them to the
// game.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp()
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		a.report(err)
		stop()
		os.Exit(1)
	}
}
