package quiz

import (
	"context"
	"strings"
	"sync"

	"github.com/kellen/chronos/internal/prefs"
)

// Identity holds the certificate holder's name. It outlives quiz attempts:
// restarting a quiz keeps the name.
type Identity struct {
	mu    sync.Mutex
	name  string
	store prefs.Store
}

// LoadIdentity reads the remembered holder name from store. A nil store
// keeps the name in memory only.
func LoadIdentity(ctx context.Context, store prefs.Store) *Identity {
	id := &Identity{store: store}
	if store != nil {
		id.name = prefs.Get(ctx, store, prefs.KeyHolderName, "")
	}
	return id
}

// Name returns the holder name, or "" when none was submitted.
func (id *Identity) Name() string {
	id.mu.Lock()
	defer id.mu.Unlock()
	return id.name
}

// HasName reports whether a name was submitted.
func (id *Identity) HasName() bool {
	return id.Name() != ""
}

// Submit trims input and stores it as the holder name. Blank input is
// ignored and reported as false. The name is kept in memory even when
// persisting it fails; the error is returned for logging.
func (id *Identity) Submit(ctx context.Context, input string) (bool, error) {
	name := strings.TrimSpace(input)
	if name == "" {
		return false, nil
	}

	id.mu.Lock()
	id.name = name
	id.mu.Unlock()

	if id.store == nil {
		return true, nil
	}
	return true, prefs.Set(ctx, id.store, prefs.KeyHolderName, name)
}

// Clear forgets the holder name.
func (id *Identity) Clear(ctx context.Context) error {
	id.mu.Lock()
	id.name = ""
	id.mu.Unlock()

	if id.store == nil {
		return nil
	}
	return prefs.Set(ctx, id.store, prefs.KeyHolderName, "")
}
