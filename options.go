package fileconf

import (
	"log/slog"

	"github.com/google/uuid"
)

// Option customises Load.
type Option func(*options)

type options struct {
	env        Environment
	prefix     string
	disableEnv bool
	strict     bool
	dotenv     []string
	logger     *slog.Logger
	rules      []Rule
	report     *Report
}

func newOptions(opts []Option) *options {
	o := &options{
		prefix: DefaultPrefix,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithEnv supplies the environment snapshot overrides are read from instead
// of the process environment.
func WithEnv(env Environment) Option {
	return func(o *options) {
		o.env = env
	}
}

// WithPrefix changes the variable name prefix, DefaultPrefix by default.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithoutEnv disables the environment override phase entirely. The loaded
// value is exactly what the file decodes to.
func WithoutEnv() Option {
	return func(o *options) {
		o.disableEnv = true
	}
}

// WithStrict turns override keys that match no field, and values that cannot
// be coerced into their field's kind, into ErrEnvVar errors instead of
// skipping them.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithDotenv reads the given .env files into the environment snapshot before
// overrides are computed. Variables already set win over file values and
// missing files are ignored. The process environment is not modified.
func WithDotenv(paths ...string) Option {
	return func(o *options) {
		if len(paths) == 0 {
			paths = []string{".env"}
		}
		o.dotenv = append(o.dotenv, paths...)
	}
}

// WithLogger sets the logger used for debug records about the load.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRules runs the given rules against the loaded value; Load fails with
// the first rule error.
func WithRules(rules ...Rule) Option {
	return func(o *options) {
		o.rules = append(o.rules, rules...)
	}
}

// WithReport records what the override phase did into r.
func WithReport(r *Report) Option {
	return func(o *options) {
		o.report = r
	}
}

// Report describes one Load call.
type Report struct {
	ID      uuid.UUID // identifies the load in log records
	Path    string
	Format  string
	Applied []string  // override keys written into the tree
	Skipped []Skipped // overrides that were not applied
}

// Skipped is an override that was not applied.
type Skipped struct {
	Key    string
	Reason string
}
