/*
Package navigation implements the slide navigation state machine.

A Controller owns the active index, the transition lock and the activation
tracker of one deck. Every successful GoTo holds the lock until the settle
delay elapses; requests arriving meanwhile are dropped, not queued. The first
visit to a slide schedules its activation hook after the activation delay. The
two delays are independent.

The controller is single threaded: all calls and all scheduled callbacks must
run on the same execution context, typically a scheduler.Loop. Tests drive it
with scheduler.Manual.

Usage:

	loop := scheduler.NewLoop()
	go loop.Run(ctx)

	ctrl := navigation.New(deck, loop,
		navigation.WithLocation(loc),
		navigation.WithLogger(logger),
	)
	_ = loop.Do(ctx, ctrl.Init)
*/
package navigation
