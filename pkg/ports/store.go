package ports

import "context"

// LocationStore persists the location fragment of each session.
// This is what lets a presentation resume on the slide it was left at.
type LocationStore interface {
	// Save persists the fragment for a given session ID.
	Save(ctx context.Context, sessionID string, fragment string) error

	// Load retrieves the fragment for a given session ID.
	// Returns domain.ErrLocationNotFound if nothing was saved for the session.
	Load(ctx context.Context, sessionID string) (string, error)

	// Delete removes the fragment for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
