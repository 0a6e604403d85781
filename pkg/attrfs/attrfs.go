// Package attrfs assembles the attribute-view framework into a usable
// in-memory filesystem: the standard basic, owner, posix and dos views over
// a memfs tree.
package attrfs

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/attrfs/pkg/attrfs/attr"
	"github.com/arthur-debert/attrfs/pkg/attrfs/memfs"
)

type config struct {
	logger    zerolog.Logger
	clock     func() time.Time
	defaults  map[string]any
	providers []attr.Provider
}

// Option configures New.
type Option func(*config)

// WithLogger sets the logger shared by the registry and the filesystem.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithClock replaces the clock used for new-file timestamps.
func WithClock(clock func() time.Time) Option {
	return func(c *config) { c.clock = clock }
}

// WithProvider registers an additional attribute provider alongside the
// standard ones.
func WithProvider(p attr.Provider) Option {
	return func(c *config) { c.providers = append(c.providers, p) }
}

// WithDefaults overrides built-in default attribute values for every new
// file, keyed by qualified attribute name (e.g. "posix:permissions":
// "rwxr-xr-x").
func WithDefaults(overrides map[string]any) Option {
	return func(c *config) { c.defaults = overrides }
}

// StandardProviders returns the four standard attribute providers: basic,
// owner, posix and dos. clock supplies default timestamps; nil means
// time.Now.
func StandardProviders(clock func() time.Time) []attr.Provider {
	return []attr.Provider{
		attr.NewBasicProvider(clock),
		attr.NewOwnerProvider(),
		attr.NewPosixProvider(),
		attr.NewDosProvider(),
	}
}

// New builds an in-memory filesystem with the standard attribute views.
func New(opts ...Option) (*memfs.FS, error) {
	c := &config{
		logger: DefaultLogger(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	providers := append(StandardProviders(c.clock), c.providers...)
	registry, err := attr.NewRegistry(c.logger, providers...)
	if err != nil {
		return nil, err
	}
	return memfs.New(registry,
		memfs.WithClock(c.clock),
		memfs.WithLogger(c.logger),
		memfs.WithDefaults(c.defaults))
}
