package main

import (
	"context"
	"fmt"
	"io"

	"devicehal-go/services/sensors"
	"devicehal-go/types"

	"github.com/rs/zerolog/log"
)

type pollResult struct {
	events []types.Event
	err    error
}

// stream activates handles, prints events to w until count events were
// seen (count <= 0 means no limit) or ctx ends, and disables every handle
// it enabled before returning.
//
// Poll has no deadline, so it runs on its own goroutine, which is left
// blocked on cancellation. Activate is safe alongside a blocked Poll.
func stream(ctx context.Context, dev sensors.PollDevice, handles []types.Handle, delayNs int64, count int, w io.Writer) error {
	var active []types.Handle
	defer func() {
		for _, h := range active {
			if rc := dev.Activate(h, false); rc != 0 {
				log.Warn().Int32("handle", int32(h)).Int("rc", rc).Msg("deactivate failed")
			}
		}
	}()
	for _, h := range handles {
		if rc := dev.SetDelay(h, delayNs); rc != 0 {
			log.Warn().Int32("handle", int32(h)).Int("rc", rc).Msg("set delay failed")
		}
		if rc := dev.Activate(h, true); rc != 0 {
			return fmt.Errorf("activate handle %d: rc %d", h, rc)
		}
		active = append(active, h)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	results := make(chan pollResult)
	go func() {
		buf := make([]types.Event, 16)
		for {
			var r pollResult
			if n := dev.Poll(buf); n < 0 {
				r.err = fmt.Errorf("poll: rc %d", n)
			} else {
				r.events = append([]types.Event(nil), buf[:n]...)
			}
			select {
			case results <- r:
			case <-ctx.Done():
				return
			}
			if r.err != nil {
				return
			}
		}
	}()

	for seen := 0; count <= 0 || seen < count; {
		select {
		case <-ctx.Done():
			log.Info().Msg("interrupted, disabling sensors")
			return nil
		case r := <-results:
			if r.err != nil {
				return r.err
			}
			for _, e := range r.events {
				fmt.Fprintln(w, formatEvent(e))
			}
			seen += len(r.events)
		}
	}
	return nil
}
