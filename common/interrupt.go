package common

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func Interrupted() chan os.Signal {
	interrupt := make(chan os.Signal, 2)
	signal.Notify(interrupt,
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGQUIT,
	)
	return interrupt
}

// CancelOnInterrupt returns a context canceled by the first interrupt signal.
func CancelOnInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	interrupt := Interrupted()
	go func() {
		defer signal.Stop(interrupt)
		select {
		case sig := <-interrupt:
			slog.Warn("Received signal, canceling", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
