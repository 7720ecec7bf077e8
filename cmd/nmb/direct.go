package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	nmb "github.com/wieslawsoltes/NativeMessageBox"
	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
)

// runDirect shows the jobs on the calling goroutine without a toolkit loop.
func runDirect(c *cli, jobs []job) int {
	if err := c.initialize(nil); err != nil {
		c.log.Log(fmt.Sprintf("Initialization failed: %v", err))
		return exitCode(core.StatusOf(err))
	}
	defer c.shutdown()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalCh)
	go func() {
		sig, ok := <-signalCh
		if !ok {
			return
		}
		c.log.Log(fmt.Sprintf("Received %s, shutting down...", sig))
		c.shutdown()
		os.Exit(exitCode(core.StatusCancelled))
	}()

	return c.run(jobs)
}

func (c *cli) shutdown() {
	nmb.Shutdown()
}
