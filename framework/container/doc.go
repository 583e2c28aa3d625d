// Package container provides a small lazy service locator.
//
// # Overview
//
// A Container maps names to factories (or plain values). A factory runs the
// first time its name is resolved, receives the container so it can resolve
// its own dependencies, and its result is cached for every later Get.
// There is no reflection-based wiring, no scopes and no decorators: each name
// is built at most once until it is unregistered.
//
// Names are case-sensitive and must be non-empty and alphanumeric
// ("myFoo", "db2"); "my-foo" or "my_foo" are rejected.
//
// # Registration
//
//	c := container.New(container.WithLogger(logger))
//
//	// Built on first Get
//	c.Register("clock", func(c *container.Container) (any, error) {
//	    return time.Now, nil
//	})
//
//	// Stored as-is, never invoked
//	c.Instance("greeting", "hello")
//
//	// Chained, panicking on a bad name or duplicate
//	c.MustInstance("a", 1).MustInstance("b", 2)
//
//	// Grouped
//	c.Use(func(c *container.Container) error {
//	    return c.Instance("port", 8080)
//	})
//
// # Resolving
//
//	v, err := c.Get("greeting")                          // any
//	s, err := container.Resolve[string](c, "greeting")    // typed
//
//	ref := container.Bind[string](c, "greeting")         // lazy handle
//	s, err = ref.Get()
//
// A factory that (directly or transitively) needs itself fails with a
// CircularDependencyError listing the whole chain:
//
//	container: circular dependency detected (a -> b -> c -> a)
//
// Failed resolutions are never cached; registering a missing dependency and
// calling Get again succeeds.
//
// # Inspection
//
//	c.IsRegistered("clock")              // true
//	c.Resolved("clock")                  // true after the first Get
//	c.Names(nil)                         // registration order
//	c.Names(regexp.MustCompile("Ba"))    // only names containing "Ba"
//
// # Events
//
//	cancel := c.Subscribe(func(ev container.Event) { ... })
//
// Listeners see EventRegistered, EventUnregistered and EventCreated. They
// are for observability only.
//
// # Service Providers
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&MailProvider{})
//	registry.Boot()
package container
