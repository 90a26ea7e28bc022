/*
Package domain contains the core models of the slide navigation engine.

It defines the vocabulary shared by the controller, the input adapters and the
hosts that present a deck. This package is kept pure and free of external
dependencies like I/O or persistence.

# Key Entities

  - SlideHandle: Opaque handle to one presentation unit (mark active/inactive, reset scroll).
  - Deck: The fixed, ordered collection of slide handles under navigation.
  - NavigationState: The active index and the transition lock.
  - Intent: The closed set of navigation requests input adapters may emit.
  - Snapshot: A read-only view of the navigation state handed to hosts.
*/
package domain
