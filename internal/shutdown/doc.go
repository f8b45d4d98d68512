// Package shutdown drives the final flush of the entity store when the host
// announces that the process is about to close.
//
// The Coordinator is a small single-shot state machine:
//
//	Idle --about-to-close--> Flushing --flush settled--> Done
//
// On entering Flushing it calls SaveAll on its Flusher and waits for it to
// settle. It then acknowledges the host unconditionally, passing along any
// flush error, so a failed flush never holds the process open. The
// coordinator imposes no timeout on the flush; hosts that need a bound apply
// their own after the signal is sent.
//
// Example:
//
//	sig := host.NewSignals()
//	defer sig.Stop()
//
//	coord := shutdown.New(st, shutdown.WithLogger(log))
//	go coord.Run(ctx, sig)
//
//	<-sig.Done()
package shutdown
