// Program handoff passes a stream of messages from a producer goroutine to a
// consumer goroutine through a single-slot [handoff.Cell].
//
// Usage:
//
//	handoff [-v] [--delay d] [--end marker] [-m message ...]
//
// The producer sends each message followed by the end marker; the consumer
// prints every message it receives until it sees the marker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var defaultMessages = []string{
	"Mares eat oats",
	"Does eat oats",
	"Little lambs eat ivy",
	"A kid will eat ivy too",
}

func main() {
	var cfg config
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	fs.StringSliceVarP(&cfg.Messages, "message", "m", defaultMessages, "Messages to send (repeatable)")
	fs.StringVar(&cfg.End, "end", "DONE", "End-of-stream marker")
	fs.DurationVar(&cfg.Delay, "delay", 0, "Maximum random pause before each put and take")
	verbose := fs.BoolP("verbose", "v", false, "Enable debug logging")
	fs.Parse(os.Args[1:])

	zc := zap.NewProductionConfig()
	if *verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := zc.Build()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, os.Stdout); err != nil {
		log.Error("handoff failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}
