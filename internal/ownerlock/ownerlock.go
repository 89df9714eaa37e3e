// Package ownerlock serializes meeting operations per owner. The
// assistant issues a query followed by a conditional mutation as two
// separate store calls with no transaction between them, so all
// operations for one owner must run one at a time.
package ownerlock

import "sync"

// Keyed hands out one mutex per owner.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *Keyed {
	return &Keyed{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the owner's mutex and returns the unlock function.
func (k *Keyed) Lock(ownerID string) func() {
	k.mu.Lock()
	l, ok := k.locks[ownerID]
	if !ok {
		l = &sync.Mutex{}
		k.locks[ownerID] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
