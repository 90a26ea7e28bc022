package ports

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/slidedeck/pkg/domain"
)

// Location is the view's address bar: a fragment identifier read once at
// startup and replaced (never pushed) after every transition.
type Location interface {
	// Fragment returns the current fragment, e.g. "#slide-3". Empty if none.
	Fragment() (string, error)
	// Replace overwrites the current fragment without adding a history entry.
	Replace(fragment string) error
}

// StoreTimeout bounds each store call made through a bound location.
var StoreTimeout = 2 * time.Second

// BindLocation exposes the fragment of one session in store as a Location.
func BindLocation(store LocationStore, sessionID string) Location {
	return &storeLocation{store: store, sessionID: sessionID}
}

type storeLocation struct {
	store     LocationStore
	sessionID string
}

func (l *storeLocation) Fragment() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), StoreTimeout)
	defer cancel()

	frag, err := l.store.Load(ctx, l.sessionID)
	if errors.Is(err, domain.ErrLocationNotFound) {
		return "", nil
	}
	return frag, err
}

func (l *storeLocation) Replace(fragment string) error {
	ctx, cancel := context.WithTimeout(context.Background(), StoreTimeout)
	defer cancel()
	return l.store.Save(ctx, l.sessionID, fragment)
}
