package container

import (
	"regexp"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ── Entry types ───────────────────────────────────────────────────────────────

// Factory builds a service from the container. It may call Get on the
// container to resolve its own dependencies.
type Factory func(c *Container) (any, error)

type entryKind uint8

const (
	kindFactory entryKind = iota
	kindLiteral
)

// entry is a registry slot: either a factory to invoke once, or a literal
// value that is returned verbatim.
type entry struct {
	kind    entryKind
	factory Factory
	value   any
}

var validate = validator.New()

// ── Container ─────────────────────────────────────────────────────────────────

// Container is a flat name → factory registry with lazy, memoized resolution.
//
// Get is reentrant but not safe for concurrent use: a container resolves on
// one goroutine at a time. IsRegistered, Names and Resolved may be called
// from any goroutine.
type Container struct {
	mu sync.RWMutex

	id string

	// name → registered factory or literal
	registry map[string]*entry

	// name → resolved instance
	instances map[string]any

	// registration order
	order []string

	// names currently being resolved, outermost first
	loading []string

	listeners  map[int]Listener
	nextListen int
	logger     *zap.Logger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for registration and resolution events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithID overrides the generated container identifier.
func WithID(id string) Option {
	return func(c *Container) {
		if id != "" {
			c.id = id
		}
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		id:        uuid.NewString(),
		registry:  make(map[string]*entry),
		instances: make(map[string]any),
		listeners: make(map[int]Listener),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("container", c.id))
	return c
}

// ID returns the container identifier attached to its log lines.
func (c *Container) ID() string { return c.id }

// ── Registration ──────────────────────────────────────────────────────────────

// Register adds a lazily-built service. The factory runs on the first Get of
// name and its result is cached until Unregister.
//
//	c.Register("db", func(c *container.Container) (any, error) {
//	    cfg, err := container.Resolve[*config.Config](c, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return sql.Open("postgres", cfg.DSN)
//	})
//
// A nil factory is stored as a literal nil value.
func (c *Container) Register(name string, f Factory) error {
	if f == nil {
		return c.add(name, &entry{kind: kindLiteral})
	}
	return c.add(name, &entry{kind: kindFactory, factory: f})
}

// Instance adds an already-built value. Get returns it as-is; nothing is
// invoked, even if v is itself a function.
//
//	c.Instance("port", 8080)
func (c *Container) Instance(name string, v any) error {
	return c.add(name, &entry{kind: kindLiteral, value: v})
}

// MustRegister is like Register but panics on error and returns the
// container so registrations can be chained.
func (c *Container) MustRegister(name string, f Factory) *Container {
	if err := c.Register(name, f); err != nil {
		panic(err)
	}
	return c
}

// MustInstance is like Instance but panics on error and returns the
// container so registrations can be chained.
func (c *Container) MustInstance(name string, v any) *Container {
	if err := c.Instance(name, v); err != nil {
		panic(err)
	}
	return c
}

func (c *Container) add(name string, e *entry) error {
	if err := validate.Var(name, "required,alphanum"); err != nil {
		return &InvalidNameError{Name: name}
	}

	c.mu.Lock()
	if _, exists := c.registry[name]; exists {
		c.mu.Unlock()
		return &DuplicateRegistrationError{Name: name}
	}
	c.registry[name] = e
	c.order = append(c.order, name)
	c.mu.Unlock()

	c.logger.Debug("service registered",
		zap.String("service", name),
		zap.Bool("literal", e.kind == kindLiteral),
	)
	c.notify(Event{Kind: EventRegistered, Name: name})
	return nil
}

// Unregister removes name, its cached instance and its place in the
// registration order. Registering the same name again starts fresh.
func (c *Container) Unregister(name string) error {
	c.mu.Lock()
	if _, ok := c.registry[name]; !ok {
		c.mu.Unlock()
		return &UnknownServiceError{Name: name}
	}
	instance, instantiated := c.instances[name]
	delete(c.registry, name)
	delete(c.instances, name)
	if i := slices.Index(c.order, name); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	c.mu.Unlock()

	c.logger.Debug("service unregistered",
		zap.String("service", name),
		zap.Bool("instantiated", instantiated),
	)
	c.notify(Event{
		Kind:         EventUnregistered,
		Name:         name,
		Instance:     instance,
		Instantiated: instantiated,
	})
	return nil
}

// Use hands the container to fn so related services can be registered in
// one place. Registrations made before fn fails are kept.
//
//	c.Use(func(c *container.Container) error {
//	    if err := c.Instance("dsn", dsn); err != nil {
//	        return err
//	    }
//	    return c.Register("db", openDB)
//	})
func (c *Container) Use(fn func(c *Container) error) error {
	return fn(c)
}

// MustUse is like Use but panics on error and returns the container.
func (c *Container) MustUse(fn func(c *Container) error) *Container {
	if err := c.Use(fn); err != nil {
		panic(err)
	}
	return c
}

// ── Queries ───────────────────────────────────────────────────────────────────

// IsRegistered reports whether name has a registry entry, instantiated or not.
func (c *Container) IsRegistered(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.registry[name]
	return ok
}

// Resolved reports whether name has been instantiated since it was registered.
func (c *Container) Resolved(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[name]
	return ok
}

// Names returns the registered names in registration order. A non-nil filter
// keeps only the names it matches anywhere in the string.
//
//	c.Names(regexp.MustCompile("Ba"))  // [myBar myBaz]
func (c *Container) Names(filter *regexp.Regexp) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.order))
	for _, name := range c.order {
		if filter == nil || filter.MatchString(name) {
			out = append(out, name)
		}
	}
	return out
}

// NamesMatching compiles pattern and calls Names with it.
func (c *Container) NamesMatching(pattern string) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return c.Names(re), nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves name, invoking its factory on first use and caching the
// result. Factories calling Get re-enter this method; a name that is already
// being resolved higher up the chain fails with a CircularDependencyError
// naming the whole cycle.
func (c *Container) Get(name string) (any, error) {
	if i := slices.Index(c.loading, name); i >= 0 {
		chain := append(slices.Clone(c.loading[i:]), name)
		err := &CircularDependencyError{Chain: chain}
		c.logger.Debug("circular dependency", zap.Strings("chain", chain))
		return nil, err
	}

	c.loading = append(c.loading, name)
	defer func() { c.loading = c.loading[:len(c.loading)-1] }()

	c.mu.RLock()
	e, registered := c.registry[name]
	instance, cached := c.instances[name]
	c.mu.RUnlock()

	if !registered {
		return nil, &UnknownServiceError{Name: name}
	}
	if cached {
		return instance, nil
	}

	switch e.kind {
	case kindLiteral:
		instance = e.value
	default:
		v, err := e.factory(c)
		if err != nil {
			c.logger.Debug("service factory failed",
				zap.String("service", name),
				zap.Error(err),
			)
			return nil, wrapFactoryError(name, err)
		}
		instance = v
	}

	c.mu.Lock()
	// The factory may have unregistered name; only cache for the live entry.
	if c.registry[name] == e {
		c.instances[name] = instance
	}
	c.mu.Unlock()

	c.logger.Debug("service created", zap.String("service", name))
	c.notify(Event{Kind: EventCreated, Name: name, Instance: instance, Instantiated: true})
	return instance, nil
}

// MustGet is like Get but panics on error.
func (c *Container) MustGet(name string) any {
	v, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Get and type-asserts the result.
//
//	// Instead of: v, err := c.Get("db"); db := v.(*sql.DB)
//	// Write:      db, err := container.Resolve[*sql.DB](c, "db")
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	instance, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	if instance == nil && nillable[T]() {
		return zero, nil
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, &WrongTypeError{Name: name, Want: typeName[T](), Got: valueTypeName(instance)}
	}
	return typed, nil
}
