// Package config handles substrate.toml runtime configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/substrate/obj"
)

// FileName is the configuration file looked up by Load and FindAndLoad.
const FileName = "substrate.toml"

var log = commonlog.GetLogger("substrate.config")

// File represents a substrate.toml configuration.
type File struct {
	Runtime Runtime `toml:"runtime"`
	Fields  Fields  `toml:"fields"`
	Log     Log     `toml:"log"`

	// Dir is the directory containing the file (set at load time, empty
	// for defaults).
	Dir string `toml:"-"`
}

// Runtime configures object creation.
type Runtime struct {
	NameLength     int  `toml:"name-length"`
	MaxLive        int  `toml:"max-live"`
	MaxArrayLen    int  `toml:"max-array-len"`
	TraceLifecycle bool `toml:"trace-lifecycle"`
}

// Fields configures attribute tables.
type Fields struct {
	InitialBuckets int `toml:"initial-buckets"`
	LoadFactor     int `toml:"load-factor"`
}

// Log configures the commonlog backend.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	Path      string `toml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() *File {
	d := obj.DefaultConfig()
	return &File{
		Runtime: Runtime{
			NameLength:     d.NameLength,
			MaxLive:        d.MaxLive,
			MaxArrayLen:    d.MaxArrayLen,
			TraceLifecycle: d.TraceLifecycle,
		},
		Fields: Fields{
			InitialBuckets: d.InitialBuckets,
			LoadFactor:     d.LoadFactor,
		},
		Log: Log{Verbosity: 1},
	}
}

// Parse decodes data over the defaults. Keys that do not belong to any
// section are an error.
func Parse(data string) (*File, error) {
	f := Default()
	md, err := toml.Decode(data, f)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Load parses the substrate.toml file in dir.
func Load(dir string) (*File, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	f, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	f.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	log.Debugf("loaded %s", path)
	return f, nil
}

// FindAndLoad walks up from startDir to find a substrate.toml file, then
// loads it. Returns the defaults if no file is found.
func FindAndLoad(startDir string) (*File, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Validate checks the runtime settings and the log verbosity.
func (f *File) Validate() error {
	var errs []error
	if err := f.RuntimeConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	if f.Log.Verbosity < 0 {
		errs = append(errs, fmt.Errorf("log verbosity %d must not be negative", f.Log.Verbosity))
	}
	return errors.Join(errs...)
}

// RuntimeConfig converts the file into the configuration NewRuntime takes.
func (f *File) RuntimeConfig() obj.Config {
	return obj.Config{
		NameLength:     f.Runtime.NameLength,
		MaxLive:        f.Runtime.MaxLive,
		MaxArrayLen:    f.Runtime.MaxArrayLen,
		InitialBuckets: f.Fields.InitialBuckets,
		LoadFactor:     f.Fields.LoadFactor,
		TraceLifecycle: f.Runtime.TraceLifecycle,
	}
}

// LogPath returns the log file path resolved against Dir, or nil for
// standard error.
func (f *File) LogPath() *string {
	if f.Log.Path == "" {
		return nil
	}
	p := f.Log.Path
	if !filepath.IsAbs(p) && f.Dir != "" {
		p = filepath.Join(f.Dir, p)
	}
	return &p
}

// ConfigureLogging applies the [log] section to commonlog.
func (f *File) ConfigureLogging() {
	commonlog.Configure(f.Log.Verbosity, f.LogPath())
}

// NewRuntime configures logging and creates a runtime from f.
func (f *File) NewRuntime() (*obj.Runtime, error) {
	f.ConfigureLogging()
	cfg := f.RuntimeConfig()
	return obj.NewRuntime(&cfg)
}
