package backendfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/stoneridge/go-marketplace-client/credentials"
)

const fileName = "credentials.json"

var _ credentials.Backend = (*Backend)(nil)

// Backend persists keys to a JSON file under the app's data folder,
// the durable storage of the SDK. IO failures are swallowed by
// contract: a backend that cannot write behaves like disabled browser
// storage and the session simply does not survive a restart.
type Backend struct {
	path   string
	values map[string]string
	lock   sync.Mutex
}

// Open loads any existing credentials file in dir, creating the
// directory when missing. An unreadable or corrupt file starts empty.
func Open(dir string) *Backend {
	b := &Backend{
		path:   filepath.Join(dir, fileName),
		values: make(map[string]string),
	}
	_ = os.MkdirAll(dir, 0o700)
	raw, err := os.ReadFile(b.path)
	if err != nil {
		return b
	}
	var values map[string]string
	if err := json.Unmarshal(raw, &values); err != nil {
		return b
	}
	b.values = values
	return b
}

func (b *Backend) Get(key string) (string, bool) {
	b.lock.Lock()
	defer b.lock.Unlock()

	v, ok := b.values[key]
	return v, ok
}

func (b *Backend) Set(key, value string) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.values[key] = value
	b.persist()
}

func (b *Backend) Delete(key string) {
	b.lock.Lock()
	defer b.lock.Unlock()

	delete(b.values, key)
	b.persist()
}

// persist writes through on every mutation. Callers hold the lock.
func (b *Backend) persist() {
	raw, err := json.Marshal(b.values)
	if err != nil {
		return
	}
	_ = os.WriteFile(b.path, raw, 0o600)
}
