package provider

import "context"

// Provider is the base interface all backend clients implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from configuration.
type Factory[T Provider] func(cfg map[string]any) (T, error)

// Widen converts a typed factory into one producing the base Provider.
func Widen[T Provider](f Factory[T]) Factory[Provider] {
	return func(cfg map[string]any) (Provider, error) {
		p, err := f(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Class is a backend's primary client type: its exported name and a
// constructor that builds it from a config map.
type Class struct {
	Name string
	New  Factory[Provider]
}

// NewClass returns the Class for a typed factory.
func NewClass[T Provider](name string, f Factory[T]) Class {
	return Class{Name: name, New: Widen(f)}
}
