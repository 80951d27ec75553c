package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(ctx, os.Stdout).Execute()
	if err == nil {
		return
	}

	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "\nDownload cancelled.")
		stop()
		os.Exit(130)
	}
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
	stop()
	os.Exit(1)
}
