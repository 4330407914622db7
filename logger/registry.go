package logger

import "sync"

// Component names used across glass.
const (
	ComponentAPI     = "api"
	ComponentCLI     = "cli"
	ComponentFactory = "factory"
	ComponentLLM     = "llm"
)

var components = &componentSet{
	pinned:  make(map[string]*Logger),
	derived: make(map[string]*Logger),
}

// componentSet holds pinned component loggers and caches the ones derived
// from the global logger.
type componentSet struct {
	mu      sync.Mutex
	pinned  map[string]*Logger
	derived map[string]*Logger
	// base is the global logger the derived entries were built from.
	base *Logger
}

// Register pins l as the logger for a component. Get returns it regardless of
// later changes to the global logger.
func Register(name string, l *Logger) {
	components.mu.Lock()
	defer components.mu.Unlock()
	components.pinned[name] = l
}

// Unregister drops a pinned component logger.
func Unregister(name string) {
	components.mu.Lock()
	defer components.mu.Unlock()
	delete(components.pinned, name)
}

// Get returns the logger for a component. Unless one was pinned with
// Register, it is the global logger tagged with the component name; the
// cached copy is rebuilt once the global logger is replaced.
func Get(name string) *Logger {
	global := GetGlobalLogger()

	components.mu.Lock()
	defer components.mu.Unlock()
	if l, ok := components.pinned[name]; ok {
		return l
	}
	if components.base != global {
		clear(components.derived)
		components.base = global
	}
	l, ok := components.derived[name]
	if !ok {
		l = global.WithComponent(name)
		components.derived[name] = l
	}
	return l
}
