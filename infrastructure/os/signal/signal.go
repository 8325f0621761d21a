// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// interruptSignals defines the default signals to catch in order to do a proper
// shutdown.
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// InterruptContext returns a context that is canceled on the first interrupt
// signal. Further interrupts are logged and otherwise ignored so that the
// shutdown in progress can finish.
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	interruptChannel := make(chan os.Signal, 1)
	signal.Notify(interruptChannel, interruptSignals...)

	go func() {
		defer signal.Stop(interruptChannel)
		select {
		case sig := <-interruptChannel:
			log.Infof("Received signal (%s). Shutting down...", sig)
			cancel()
		case <-ctx.Done():
			return
		}

		for {
			select {
			case sig := <-interruptChannel:
				log.Infof("Received signal (%s). Already shutting down...", sig)
			case <-parent.Done():
				return
			}
		}
	}()
	return ctx, cancel
}
