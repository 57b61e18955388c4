package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/samvad-content/internal/cli"
	"github.com/samvad-hq/samvad-content/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cli.NewRootCmd(cli.DefaultLoader).ExecuteContext(ctx)
	stop()
	_ = logger.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cmsctl: %v\n", err)
		os.Exit(1)
	}
}
