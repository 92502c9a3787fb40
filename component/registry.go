package component

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Kind identifies a pipeline stage a component serves.
type Kind string

const (
	KindParser    Kind = "parser"
	KindExtractor Kind = "extractor"
	KindChunker   Kind = "chunker"
	KindEmbedder  Kind = "embedder"
	KindStore     Kind = "store"
)

// Descriptor describes a registered component: its stage kind, its name, and
// the capability tags declared at registration. Parser tags list the file
// extensions the parser accepts (e.g. ".pdf").
type Descriptor struct {
	Kind Kind
	Name string
	Tags []string
}

type entry struct {
	desc    Descriptor
	factory any
}

// Registry maps (kind, name) pairs to factories producing component
// instances. It is a pure lookup table with an explicit lifecycle:
// registration happens during process initialization, Seal marks the end of
// registration, and afterwards the registry is read-only and may be queried
// concurrently without locking.
type Registry struct {
	mu      sync.Mutex
	sealed  atomic.Bool
	entries map[Kind]map[string]entry
}

// NewRegistry creates an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Kind]map[string]entry),
	}
}

// Seal ends the registration phase. After Seal, registration fails with
// ErrRegistrySealed and lookups no longer take the registration lock.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed.Store(true)
}

// Sealed reports whether the registration phase has ended.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

func (r *Registry) register(kind Kind, name string, factory any, tags []string) error {
	if name == "" {
		return fmt.Errorf("%w: kind %s", ErrEmptyComponentName, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		return fmt.Errorf("%w: cannot register %s %q", ErrRegistrySealed, kind, name)
	}

	byName, ok := r.entries[kind]
	if !ok {
		byName = make(map[string]entry)
		r.entries[kind] = byName
	}

	if _, exists := byName[name]; exists {
		return fmt.Errorf("%w: %s %q", ErrDuplicateComponent, kind, name)
	}

	byName[name] = entry{
		desc: Descriptor{
			Kind: kind,
			Name: name,
			Tags: append([]string(nil), tags...),
		},
		factory: factory,
	}
	return nil
}

// RegisterParser registers a parser factory under name. Tags declare the file
// extensions the parser accepts.
func (r *Registry) RegisterParser(name string, factory ParserFactory, tags ...string) error {
	if factory == nil {
		return fmt.Errorf("%w: parser %q", ErrNilFactory, name)
	}
	return r.register(KindParser, name, factory, tags)
}

// RegisterExtractor registers an extractor factory under name.
func (r *Registry) RegisterExtractor(name string, factory ExtractorFactory, tags ...string) error {
	if factory == nil {
		return fmt.Errorf("%w: extractor %q", ErrNilFactory, name)
	}
	return r.register(KindExtractor, name, factory, tags)
}

// RegisterChunker registers a chunker factory under name.
func (r *Registry) RegisterChunker(name string, factory ChunkerFactory, tags ...string) error {
	if factory == nil {
		return fmt.Errorf("%w: chunker %q", ErrNilFactory, name)
	}
	return r.register(KindChunker, name, factory, tags)
}

// RegisterEmbedder registers an embedder factory under name.
func (r *Registry) RegisterEmbedder(name string, factory EmbedderFactory, tags ...string) error {
	if factory == nil {
		return fmt.Errorf("%w: embedder %q", ErrNilFactory, name)
	}
	return r.register(KindEmbedder, name, factory, tags)
}

// RegisterStore registers a store factory under name.
func (r *Registry) RegisterStore(name string, factory StoreFactory, tags ...string) error {
	if factory == nil {
		return fmt.Errorf("%w: store %q", ErrNilFactory, name)
	}
	return r.register(KindStore, name, factory, tags)
}

func (r *Registry) lookup(kind Kind, name string) (entry, error) {
	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	e, ok := r.entries[kind][name]
	if !ok {
		return entry{}, fmt.Errorf("%w: %s %q", ErrUnknownComponent, kind, name)
	}
	return e, nil
}

// Parser resolves a parser by name and produces an instance.
func (r *Registry) Parser(name string) (Parser, error) {
	e, err := r.lookup(KindParser, name)
	if err != nil {
		return nil, err
	}
	return e.factory.(ParserFactory)()
}

// Extractor resolves an extractor by name and produces an instance.
func (r *Registry) Extractor(name string) (Extractor, error) {
	e, err := r.lookup(KindExtractor, name)
	if err != nil {
		return nil, err
	}
	return e.factory.(ExtractorFactory)()
}

// Chunker resolves a chunker by name and produces an instance.
func (r *Registry) Chunker(name string) (Chunker, error) {
	e, err := r.lookup(KindChunker, name)
	if err != nil {
		return nil, err
	}
	return e.factory.(ChunkerFactory)()
}

// Embedder resolves an embedder by name and produces an instance.
func (r *Registry) Embedder(name string) (Embedder, error) {
	e, err := r.lookup(KindEmbedder, name)
	if err != nil {
		return nil, err
	}
	return e.factory.(EmbedderFactory)()
}

// Store resolves a store by name and produces an instance.
func (r *Registry) Store(name string) (Store, error) {
	e, err := r.lookup(KindStore, name)
	if err != nil {
		return nil, err
	}
	return e.factory.(StoreFactory)()
}

// Names returns the sorted names registered for a kind.
func (r *Registry) Names(kind Kind) []string {
	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	names := make([]string, 0, len(r.entries[kind]))
	for name := range r.entries[kind] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptors returns the descriptors registered for a kind, sorted by name.
func (r *Registry) Descriptors(kind Kind) []Descriptor {
	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	descs := make([]Descriptor, 0, len(r.entries[kind]))
	for _, e := range r.entries[kind] {
		descs = append(descs, e.desc)
	}
	sort.Slice(descs, func(i, j int) bool { return descs[i].Name < descs[j].Name })
	return descs
}
