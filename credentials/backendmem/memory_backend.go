package backendmem

import (
	"sync"

	"github.com/stoneridge/go-marketplace-client/credentials"
)

var _ credentials.Backend = (*Backend)(nil)

// Backend is an in-memory key-value backend. It is the session-scoped
// storage of a running app (values vanish when the process exits) and
// doubles as the fake for Store tests.
type Backend struct {
	values map[string]string
	lock   sync.RWMutex
}

func New() *Backend {
	return &Backend{values: make(map[string]string)}
}

func (b *Backend) Get(key string) (string, bool) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	v, ok := b.values[key]
	return v, ok
}

func (b *Backend) Set(key, value string) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.values[key] = value
}

func (b *Backend) Delete(key string) {
	b.lock.Lock()
	defer b.lock.Unlock()

	delete(b.values, key)
}

// Len reports the number of stored keys, for tests.
func (b *Backend) Len() int {
	b.lock.RLock()
	defer b.lock.RUnlock()

	return len(b.values)
}
