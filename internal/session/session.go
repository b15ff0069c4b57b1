package session

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"vidar/internal/common"
	"vidar/internal/engine"
	"vidar/internal/feed"
)

const recordChanSize = 100

// Session drives one instrument end to end: a reader goroutine decodes
// order records off the feed while a single submit loop hands them to the
// engine and reports the resulting trades. Submission stays strictly
// serial; the matching contract depends on a total order over arrivals.
type Session struct {
	engine   *engine.Engine
	in       *feed.Reader
	out      *feed.Writer
	dumpBook bool
}

// New wires a session. When dumpBook is set, the final book state is
// written once the feed drains.
func New(eng *engine.Engine, in *feed.Reader, out *feed.Writer, dumpBook bool) *Session {
	return &Session{
		engine:   eng,
		in:       in,
		out:      out,
		dumpBook: dumpBook,
	}
}

// Run processes the feed to exhaustion or until the context is cancelled.
func (s *Session) Run(ctx context.Context) error {
	t, _ := tomb.WithContext(ctx)
	records := make(chan *common.Order, recordChanSize)

	// Decode records off the feed. Malformed records are rejected here so
	// the engine only ever sees internally consistent orders. The reader
	// is deliberately not tracked by the tomb: a feed blocked on a read
	// must not stop Run from returning once the tomb dies.
	go func() {
		defer close(records)
		for {
			order, err := s.in.Next()
			switch {
			case errors.Is(err, io.EOF):
				return
			case err != nil:
				if !feed.Skippable(err) {
					t.Kill(err)
					return
				}
				log.Warn().Err(err).Msg("skipping malformed record")
				continue
			}
			select {
			case records <- order:
			case <-t.Dying():
				return
			}
		}
	}()

	// Submit loop. One order is fully processed before the next is
	// admitted.
	t.Go(func() error {
		for {
			select {
			case <-t.Dying():
				return nil
			case order, ok := <-records:
				if !ok {
					if s.dumpBook && t.Err() == tomb.ErrStillAlive {
						return s.out.WriteBook(s.engine.Bids(), s.engine.Asks())
					}
					return nil
				}
				trades := s.engine.Submit(order)
				log.Debug().
					Str("id", order.ID).
					Uint64("sequence", order.Sequence).
					Int("trades", len(trades)).
					Msg("order admitted")
				if err := s.out.WriteTrades(trades); err != nil {
					return err
				}
			}
		}
	})

	return t.Wait()
}
