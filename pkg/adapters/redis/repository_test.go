package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/wasi/pkg/core"
)

func setupMiniredis(t *testing.T, cfg Config) (*miniredis.Miniredis, *Repository) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	repo := NewRepositoryFromClient(client, cfg)

	t.Cleanup(func() {
		_ = repo.Close()
	})
	require.NoError(t, repo.Initialize(context.Background()))
	return mr, repo
}

func TestRepository_LoadMissingKey(t *testing.T) {
	_, repo := setupMiniredis(t, Config{})

	k, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, k.Len())
}

func TestRepository_SaveAndLoad(t *testing.T) {
	mr, repo := setupMiniredis(t, Config{Key: "test:kb"})
	ctx := context.Background()

	k := core.NewKnowledge()
	k.Set("closures", core.Entry{Text: "scope capture"})
	k.Set("array", core.Entry{Text: "override"})
	require.NoError(t, repo.Save(ctx, k))

	raw, err := mr.Get("test:kb")
	require.NoError(t, err)
	assert.JSONEq(t, `{"closures":{"text":"scope capture"},"array":{"text":"override"}}`, raw)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"closures", "array"}, loaded.Keys())
}

func TestRepository_Malformed(t *testing.T) {
	mr, repo := setupMiniredis(t, Config{})
	require.NoError(t, mr.Set(DefaultKey, "[1,2"))

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, core.ErrMalformed)
}

func TestRepository_ReadOnly(t *testing.T) {
	_, repo := setupMiniredis(t, Config{ReadOnly: true})

	err := repo.Save(context.Background(), core.NewKnowledge())
	assert.ErrorIs(t, err, core.ErrReadOnly)
}

func TestRepository_InitializeUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	repo, err := NewRepository(Config{Addr: addr})
	require.NoError(t, err)
	defer repo.Close()

	assert.Error(t, repo.Initialize(context.Background()))
}

func TestRepository_StoreIntegration(t *testing.T) {
	_, repo := setupMiniredis(t, Config{})
	ctx := context.Background()

	store := core.NewStore(repo, nil)
	require.NoError(t, store.Load(ctx))
	require.NoError(t, store.Upsert(ctx, "  Closures ", core.Entry{Text: "scope"}))

	restarted := core.NewStore(repo, nil)
	require.NoError(t, restarted.Load(ctx))
	e, ok := restarted.Get("closures")
	require.True(t, ok)
	assert.Equal(t, "scope", e.Text)

	state, ok := restarted.State().(core.StoreState)
	require.True(t, ok)
	assert.Equal(t, "redis", state.RepositoryType)
}

func TestNewRepository_RequiresAddr(t *testing.T) {
	_, err := NewRepository(Config{})
	assert.Error(t, err)
}
