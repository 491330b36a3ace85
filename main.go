/*
Runs the gravity demo on top of the engine package.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima2d/engine"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/testbed"
)

func main() {
	path, err := core.ConfigPath()
	if err != nil {
		core.LogFatal("config path: %s", err)
	}
	cfg, err := core.LoadConfig(path)
	if err != nil {
		core.LogFatal("config: %s", err)
	}
	core.SetLogLevel(cfg.Application.LogLevel)

	tb := testbed.NewTestGame(cfg)

	e, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal("engine: %s", err)
	}

	if err := e.Initialize(); err != nil {
		e.Shutdown()
		core.LogFatal("initialize: %s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// Signals only ask the loop to stop; teardown stays on the main thread.
	go func() {
		<-sigCh
		e.Stop()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		core.LogFatal("run: %s", runErr)
	}
}
