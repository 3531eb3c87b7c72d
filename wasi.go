package wasi

import (
	"log/slog"
	"time"

	"github.com/aretw0/wasi/internal/platform"
	"github.com/aretw0/wasi/pkg/core"
)

// --- Types ---

// Session is a conversation with the assistant.
type Session = core.Session

// Contribution is the data of a knowledge submission.
type Contribution = core.Contribution

// Message is one entry of the conversation log.
type Message = core.Message

// Config is the content of a wasi.yaml file.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring WASI.
type Option = platform.Option

// Adapter names.
const (
	AdapterFS     = platform.AdapterFS
	AdapterRedis  = platform.AdapterRedis
	AdapterMemory = platform.AdapterMemory
)

// WithForceTemp forces the knowledge file into a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist requires the store directory to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the store and the session.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository injects a custom durable slot.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter selects the durable slot by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithRedis configures the redis adapter.
func WithRedis(addr, password string, db int, key string) Option {
	return platform.WithRedis(addr, password, db, key)
}

// WithReadOnly rejects every write to the slot.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the sandbox used when running via `go run`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithSerializer registers a custom serializer for a file extension.
func WithSerializer(ext string, s any) Option {
	return platform.WithSerializer(ext, s)
}

// WithSessionOptions appends options passed to the session.
func WithSessionOptions(opts ...core.SessionOption) Option {
	return platform.WithSessionOptions(opts...)
}

// WithInstantReplies disables the simulated delays.
func WithInstantReplies() Option {
	return platform.WithInstantReplies()
}

// WithDelays sets the simulated thinking range and learning delay.
func WithDelays(thinkMin, thinkMax, learn time.Duration) Option {
	return platform.WithDelays(thinkMin, thinkMax, learn)
}

// --- Factory ---

// New opens the knowledge base and starts a session.
func New(uri string, opts ...Option) (*core.Session, error) {
	return platform.New(uri, opts...)
}

// OpenStore opens the knowledge base without a session.
func OpenStore(uri string, opts ...Option) (*core.Store, error) {
	return platform.OpenStore(uri, opts...)
}

// Init initializes a repository explicitly.
func Init(uri string, opts ...Option) (core.Repository, error) {
	return platform.Init(uri, opts...)
}

// --- Safety & Utils ---

// ResolveStorePath determines the actual knowledge file path based on safety rules.
func ResolveStorePath(userPath string, forceTemp bool) string {
	return platform.ResolveStorePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a .wasi directory or a wasi.yaml file.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// LoadConfig reads a wasi.yaml file.
func LoadConfig(path string) (*Config, error) {
	return platform.LoadConfig(path)
}
