package obj

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
)

// Config holds runtime configuration.
type Config struct {
	NameLength     int  // display name buffer, names keep NameLength-1 bytes
	MaxLive        int  // live object budget, 0 for unlimited
	MaxArrayLen    int  // largest Array length that may be allocated
	InitialBuckets int  // bucket count of a new attribute table
	LoadFactor     int  // attribute table growth threshold
	TraceLifecycle bool // log creation and destruction at debug level
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() Config {
	return Config{
		NameLength:     16,
		MaxLive:        0,
		MaxArrayLen:    1 << 20,
		InitialBuckets: 8,
		LoadFactor:     4,
	}
}

// Validate checks that every field is usable.
func (c Config) Validate() error {
	var errs []error
	if c.NameLength < 2 {
		errs = append(errs, fmt.Errorf("name length %d must be at least 2", c.NameLength))
	}
	if c.MaxLive < 0 {
		errs = append(errs, fmt.Errorf("max live %d must not be negative", c.MaxLive))
	}
	if c.MaxArrayLen < 0 {
		errs = append(errs, fmt.Errorf("max array length %d must not be negative", c.MaxArrayLen))
	}
	if c.InitialBuckets < 1 {
		errs = append(errs, fmt.Errorf("initial buckets %d must be positive", c.InitialBuckets))
	}
	if c.LoadFactor < 1 {
		errs = append(errs, fmt.Errorf("load factor %d must be positive", c.LoadFactor))
	}
	return errors.Join(errs...)
}

// Runtime owns the identity counter, the error sink and the registry of
// live objects. Every object is created through a Runtime.
type Runtime struct {
	ID uuid.UUID

	cfg    Config
	sink   ErrorSink
	log    commonlog.Logger
	nextID uint32
	live   map[uint32]*Object
}

// NewRuntime creates a runtime. A nil cfg selects DefaultConfig. Failures
// are reported through a LogSink until SetErrorSink is called.
func NewRuntime(cfg *Config) (*Runtime, error) {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid runtime config: %w", err)
	}

	rt := &Runtime{
		ID:     uuid.New(),
		cfg:    c,
		log:    logger,
		nextID: 1,
		live:   make(map[uint32]*Object),
	}
	rt.sink = LogSink{Log: rt.log}
	return rt, nil
}

// Config returns the runtime configuration.
func (rt *Runtime) Config() Config {
	return rt.cfg
}

// SetErrorSink replaces the error channel. A nil sink restores logging.
func (rt *Runtime) SetErrorSink(sink ErrorSink) {
	if sink == nil {
		sink = LogSink{Log: rt.log}
	}
	rt.sink = sink
}

// ErrorSink returns the current error channel.
func (rt *Runtime) ErrorSink() ErrorSink {
	return rt.sink
}

// Live returns the number of objects created and not yet destroyed.
func (rt *Runtime) Live() int {
	return len(rt.live)
}

// LiveObjects returns the live objects in creation order.
func (rt *Runtime) LiveObjects() []*Object {
	objs := make([]*Object, 0, len(rt.live))
	for _, o := range rt.live {
		objs = append(objs, o)
	}
	slices.SortFunc(objs, func(a, b *Object) int {
		return cmp.Compare(a.id, b.id)
	})
	return objs
}

// Lookup returns the live object with the given identity, or nil.
func (rt *Runtime) Lookup(id uint32) *Object {
	return rt.live[id]
}

func (rt *Runtime) trace(event string, o *Object) {
	if rt.cfg.TraceLifecycle {
		rt.log.Debugf("%s %s", event, o.name)
	}
}
