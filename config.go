package scnr

// Config controls build-time behavior: whether the process-wide build cache
// is consulted, whether a literal prefilter is attached to each mode, and
// whether DOT diagnostics are written out.
//
// Example:
//
//	config := scnr.DefaultConfig()
//	config.EnablePrefilter = false // measure the scan loop without the fast path
//	scanner, err := builder.Build(scnr.WithConfig(config))
type Config struct {
	// EnableCache consults and populates the process-wide build cache (A3).
	// Default: true.
	EnableCache bool

	// EnablePrefilter attaches a literal/ASCII-skip prefilter (A6) to every
	// compiled mode. Disabling it never changes the emitted match stream,
	// only performance.
	// Default: true.
	EnablePrefilter bool

	// DotExportDir, if non-empty, makes Build write one DOT file per
	// compiled mode into this directory.
	// Default: "" (disabled).
	DotExportDir string

	// MaxRecursionDepth bounds AST recursion during pattern compilation.
	// Default: 100.
	MaxRecursionDepth int
}

// DefaultConfig returns sensible defaults: cache and prefilter on, DOT
// export off.
func DefaultConfig() Config {
	return Config{
		EnableCache:       true,
		EnablePrefilter:   true,
		MaxRecursionDepth: 100,
	}
}

// Validate checks configuration invariants.
func (c Config) Validate() error {
	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 1000 {
		return &ConfigError{Field: "MaxRecursionDepth", Message: "must be between 10 and 1000"}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "scnr: invalid config: " + e.Field + ": " + e.Message
}

// BuildOption customizes a Config before Build runs.
type BuildOption func(*Config)

// WithCache toggles the process-wide build cache.
func WithCache(enabled bool) BuildOption {
	return func(c *Config) { c.EnableCache = enabled }
}

// WithPrefilter toggles the literal/ASCII-skip prefilter.
func WithPrefilter(enabled bool) BuildOption {
	return func(c *Config) { c.EnablePrefilter = enabled }
}

// WithDotExport makes Build write one DOT file per mode into dir.
func WithDotExport(dir string) BuildOption {
	return func(c *Config) { c.DotExportDir = dir }
}

// WithConfig replaces the whole config wholesale, useful when the caller
// already assembled one via DefaultConfig and mutated it directly.
func WithConfig(config Config) BuildOption {
	return func(c *Config) { *c = config }
}
