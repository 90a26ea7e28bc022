/*
Package ports defines the driven ports (interfaces) of the slide navigation core.

These interfaces decouple the controller from the view it drives, allowing the
same state machine to run behind a terminal, an HTTP API or a test double.

# Key Interfaces

  - Location: the fragment identifier the controller reads once and replaces on every transition.
  - LocationStore: persists fragments per session (memory, file, Redis).
  - ProgressDots, Counter, NavButtons, Fullscreen: optional view widgets. A nil widget means the affordance is unavailable.
  - SessionLocker: serializes session creation across replicas.
*/
package ports
