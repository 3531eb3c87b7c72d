package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/wasi/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterRedis  = "redis"
	AdapterMemory = "memory"
)

// options holds the internal configuration for a WASI session.
type options struct {
	repository  core.Repository
	logger      *slog.Logger
	adapter     string
	config      map[string]interface{}
	serializers map[string]any
	session     []core.SessionOption
}

// Option defines a functional option for configuring WASI.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:     AdapterFS,
		config:      make(map[string]interface{}),
		serializers: make(map[string]any),
	}
}

func (o *options) flag(name string) bool {
	v, _ := o.config[name].(bool)
	return v
}

func (o *options) str(name string) string {
	v, _ := o.config[name].(string)
	return v
}

// WithSerializer registers a custom serializer for a file extension.
// The serializer 's' must implement fs.Serializer; this is checked during Init.
func WithSerializer(ext string, s any) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithForceTemp forces the knowledge file into a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist requires the store directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithLogger sets the logger for the store and the session.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a custom durable slot.
// If provided, the adapter selection is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the durable slot by name ("fs", "redis" or "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithRedis configures the redis adapter. An empty addr falls back to the URI
// passed to New; an empty key uses the default slot name.
func WithRedis(addr, password string, db int, key string) Option {
	return func(o *options) {
		o.config["redis_addr"] = addr
		o.config["redis_password"] = password
		o.config["redis_db"] = db
		o.config["redis_key"] = key
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Save returns ErrReadOnly, so contributions fail with the error message.
// 2. The store directory is not created.
// 3. Dev Safety (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true), relative store paths are re-rooted into a temporary directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithSessionOptions appends options passed to core.NewSession.
func WithSessionOptions(opts ...core.SessionOption) Option {
	return func(o *options) {
		o.session = append(o.session, opts...)
	}
}

// WithInstantReplies disables the simulated thinking, learning and
// error cooldown delays.
func WithInstantReplies() Option {
	return WithSessionOptions(
		core.WithThinkDelay(0, 0),
		core.WithLearnDelay(0),
		core.WithErrorCooldown(0),
	)
}

// WithDelays sets the simulated delays of the session.
func WithDelays(thinkMin, thinkMax, learn time.Duration) Option {
	return WithSessionOptions(
		core.WithThinkDelay(thinkMin, thinkMax),
		core.WithLearnDelay(learn),
	)
}
