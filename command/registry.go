package command

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknown is returned by Lookup for names nobody registered.
var ErrUnknown = errors.New("command: unknown command")

// Factory creates a fresh command instance.
type Factory func() Command

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes a command available by name, following the database/sql
// driver pattern:
//
//	func init() {
//		command.Register("line", func() command.Command { return NewLine() })
//	}
//
// Register panics if factory is nil or the name is already registered.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("command: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("command: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a command. It is a no-op for unknown names.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Lookup creates a command by name.
func Lookup(name string) (Command, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknown, name)
	}
	return factory(), nil
}

// Names returns the registered command names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
