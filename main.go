/*
This is an example of application that will use the
input package to test things out
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spatialkit/reticle/testbed"
)

func main() {
	tb := testbed.NewTestGame()

	if err := tb.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		_ = tb.Shutdown()
		os.Exit(0)
	}()

	if err := tb.Run(); err != nil {
		panic(err)
	}

	if err := tb.Shutdown(); err != nil {
		panic(err)
	}
}
