package platform_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/wasi/internal/platform"
	"github.com/aretw0/wasi/pkg/core"
)

const sampleConfig = `adapter: memory
store: data/kb.yaml
redis:
  addr: localhost:6380
  key: team_kb
session:
  think_min: 10ms
  think_max: 20ms
  learn_delay: 0s
  greeting: false
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, platform.ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := platform.LoadConfig(writeConfig(t, dir, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Adapter)
	assert.Equal(t, filepath.Join(dir, "data", "kb.yaml"), cfg.Store)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr)
	assert.Equal(t, "team_kb", cfg.Redis.Key)
	require.NotNil(t, cfg.Session.ThinkMin)
	assert.Equal(t, 10*time.Millisecond, *cfg.Session.ThinkMin)
	require.NotNil(t, cfg.Session.LearnDelay)
	assert.Equal(t, time.Duration(0), *cfg.Session.LearnDelay)
	assert.Nil(t, cfg.Session.ErrorCooldown)
	require.NotNil(t, cfg.Session.Greeting)
	assert.False(t, *cfg.Session.Greeting)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("Unknown Field", func(t *testing.T) {
		_, err := platform.LoadConfig(writeConfig(t, t.TempDir(), "adaptr: fs\n"))
		assert.Error(t, err)
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := platform.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("Empty File", func(t *testing.T) {
		cfg, err := platform.LoadConfig(writeConfig(t, t.TempDir(), ""))
		require.NoError(t, err)
		assert.Equal(t, platform.Config{}, *cfg)
	})
}

func TestDiscoverConfig(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "adapter: memory\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, found, err := platform.DiscoverConfig(nested)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, root, found)
	assert.Equal(t, "memory", cfg.Adapter)

	t.Run("Marker Without Config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, platform.SystemDir), 0755))

		cfg, found, err := platform.DiscoverConfig(dir)
		require.NoError(t, err)
		assert.Nil(t, cfg)
		assert.Equal(t, dir, found)
	})
}

func TestConfigOptions(t *testing.T) {
	cfg, err := platform.LoadConfig(writeConfig(t, t.TempDir(), sampleConfig))
	require.NoError(t, err)
	// The memory adapter ignores the redis block, so this opens without a server.
	cfg.Redis = platform.RedisConfig{}

	s, err := platform.New("", cfg.Options()...)
	require.NoError(t, err)
	defer s.Close()

	assert.Empty(t, s.Messages(), "greeting disabled by config")
	state := s.State().(core.SessionState)
	assert.Equal(t, "memory", state.Store.RepositoryType)

	var nilCfg *platform.Config
	assert.Nil(t, nilCfg.Options())
}
