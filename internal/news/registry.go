package news

import (
	"fmt"
	"sort"
	"time"

	"news-trader/internal/interfaces"
	"news-trader/internal/store"
)

// Factory builds a configured news source.
type Factory func(cfg *store.Config) interfaces.Source

// Registry maps source identifiers to factories. It is populated explicitly
// at startup and handed to the bootstrap code, replacing any notion of a
// process-global lookup table.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry pre-populated with the built-in sources.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{
		"yahoo_finance": func(cfg *store.Config) interfaces.Source {
			return NewYahooFinance(time.Duration(cfg.News.FetchTimeoutSeconds) * time.Second)
		},
	}}
}

// Register adds a source factory under the given name.
func (r *Registry) Register(name string, f Factory) error {
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("news source %q already registered", name)
	}
	r.factories[name] = f
	return nil
}

// Build resolves the named sources against the registry.
func (r *Registry) Build(names []string, cfg *store.Config) ([]interfaces.Source, error) {
	sources := make([]interfaces.Source, 0, len(names))
	for _, name := range names {
		f, ok := r.factories[name]
		if !ok {
			return nil, fmt.Errorf("unknown news source %q (available: %v)", name, r.Names())
		}
		sources = append(sources, f(cfg))
	}
	return sources, nil
}

// Names lists the registered source identifiers, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
