package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/creachadair/handoff"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// config carries the settings for a single run.
type config struct {
	Messages []string      // sent in order, followed by End
	End      string        // end-of-stream marker
	Delay    time.Duration // if positive, the bound on random pauses
}

func (c config) check() error {
	if c.End == "" {
		return errors.New("empty end marker")
	}
	if slices.Contains(c.Messages, c.End) {
		return fmt.Errorf("message %q is the end marker", c.End)
	}
	return nil
}

// run sends cfg.Messages from a producer to a consumer through a cell and
// writes each message received to w. It returns when the consumer has seen
// the end marker, or when ctx ends.
func run(ctx context.Context, cfg config, log *zap.Logger, w io.Writer) error {
	if err := cfg.check(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cell := handoff.New[string]()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		plog := log.With(zap.String("role", "producer"))
		for _, msg := range append(slices.Clone(cfg.Messages), cfg.End) {
			if err := pause(gctx, cfg.Delay); err != nil {
				return err
			}
			if err := cell.PutContext(gctx, msg); err != nil {
				return fmt.Errorf("put %q: %w", msg, err)
			}
			plog.Debug("put", zap.String("message", msg))
		}
		return nil
	})

	g.Go(func() error {
		clog := log.With(zap.String("role", "consumer"))
		var n int
		for {
			if err := pause(gctx, cfg.Delay); err != nil {
				return err
			}
			msg, err := cell.TakeContext(gctx)
			if err != nil {
				return fmt.Errorf("take: %w", err)
			}
			clog.Debug("take", zap.String("message", msg))
			if msg == cfg.End {
				clog.Info("end of stream", zap.Int("received", n))
				return nil
			}
			n++
			if _, err := fmt.Fprintf(w, "MESSAGE RECEIVED: %s\n", msg); err != nil {
				return err
			}
		}
	})
	return g.Wait()
}

// pause sleeps for a random duration up to limit, or until ctx ends.
func pause(ctx context.Context, limit time.Duration) error {
	if limit <= 0 {
		return nil
	}
	t := time.NewTimer(rand.N(limit))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
