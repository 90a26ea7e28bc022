/*
Package slidedeck drives linear navigation through a deck of slides.

A Presentation couples a deck of Markdown slides with a navigation controller
running on its own event loop. Keyboard keys, swipe gestures, progress-dot
clicks and explicit intents are all funnelled into the same controller, which
guarantees that transitions never overlap and that each slide's activation
hook fires at most once.

# Concept

Navigation is a small state machine: an active index and a transition lock.
A successful transition holds the lock for a settle delay; anything arriving
meanwhile is dropped. The first visit to a slide schedules its activation hook
(e.g. rendering a chart) after a separate activation delay. The surrounding
view (terminal, HTTP client, test double) only sees slide handles and optional
widgets, so the core can be exercised without any UI toolkit.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/slidedeck"
		"github.com/aretw0/slidedeck/pkg/domain"
	)

	func main() {
		ctx := context.Background()

		p, err := slidedeck.New("./talk")
		if err != nil {
			log.Fatal(err)
		}
		if err := p.Start(ctx); err != nil {
			log.Fatal(err)
		}
		defer p.Close()

		snap, err := p.Dispatch(ctx, domain.Next())
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("slide %d of %d", snap.ActiveIndex+1, snap.Total)
	}
*/
package slidedeck
