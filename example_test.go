package slidedeck_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/slidedeck"
	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/aretw0/slidedeck/pkg/view"
)

// ExampleNewFromContents demonstrates how to drive an in-memory deck.
// This is useful for testing, embedded scenarios, or when you don't want to rely on the file system.
func ExampleNewFromContents() {
	p := slidedeck.NewFromContents("demo", []view.Content{
		{Title: "Welcome", Body: "Hello!"},
		{Title: "Details", Body: "Some details."},
		{Title: "Thanks", Body: "Bye."},
	})

	ctx := context.Background()
	if err := p.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	snap, err := p.Dispatch(ctx, domain.Next())
	if err != nil {
		log.Fatal(err)
	}
	frame, err := p.Frame(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Active: %d of %d\n", snap.ActiveIndex+1, snap.Total)
	fmt.Printf("Title: %s\n", frame.Title)
	fmt.Printf("Counter: %s\n", frame.Counter)
	// Output:
	// Active: 2 of 3
	// Title: Details
	// Counter: 2 / 3
}
