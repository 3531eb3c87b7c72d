package core_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/wasi/pkg/adapters/memory"
	"github.com/aretw0/wasi/pkg/core"
)

// failingRepository loads fine but refuses every write.
type failingRepository struct {
	*memory.Repository
	loadErr error
}

func (f *failingRepository) Load(ctx context.Context) (*core.Knowledge, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.Repository.Load(ctx)
}

func (f *failingRepository) Save(ctx context.Context, k *core.Knowledge) error {
	return errors.New("disk full")
}

func TestStore_UpsertThenLoad(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()

	store := core.NewStore(repo, nil)
	require.NoError(t, store.Load(ctx))
	entry := core.Entry{Text: "closures capture scope", URL: "https://example.com", Title: "User Resource: Closures", Personality: "neat"}
	require.NoError(t, store.Upsert(ctx, " Closures ", entry))

	restarted := core.NewStore(repo, nil)
	require.NoError(t, restarted.Load(ctx))

	got, ok := restarted.Get("closures")
	require.True(t, ok)
	assert.Equal(t, entry, got)
}

func TestStore_UpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	store := core.NewStore(memory.NewRepository(), nil)
	require.NoError(t, store.Load(ctx))

	require.NoError(t, store.Upsert(ctx, "a", core.Entry{Text: "1"}))
	require.NoError(t, store.Upsert(ctx, "b", core.Entry{Text: "2"}))
	require.NoError(t, store.Upsert(ctx, "A", core.Entry{Text: "3"}))

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []string{"a", "b"}, store.Keys(), "overwrite keeps position")
	e, _ := store.Get("a")
	assert.Equal(t, "3", e.Text)
}

func TestStore_UpsertEmptyKey(t *testing.T) {
	store := core.NewStore(memory.NewRepository(), nil)

	err := store.Upsert(context.Background(), "   ", core.Entry{Text: "x"})
	assert.ErrorIs(t, err, core.ErrInvalidContribution)
	assert.Equal(t, 0, store.Len())
}

func TestStore_LoadMalformedStartsEmpty(t *testing.T) {
	store := core.NewStore(memory.NewRepositoryWithPayload([]byte("{broken")), nil)

	require.NoError(t, store.Load(context.Background()))
	assert.Equal(t, 0, store.Len())
}

func TestStore_LoadIOErrorPropagates(t *testing.T) {
	repo := &failingRepository{Repository: memory.NewRepository(), loadErr: errors.New("permission denied")}
	store := core.NewStore(repo, nil)

	assert.Error(t, store.Load(context.Background()))
}

func TestStore_PersistFailureLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewRepository()
	seed := core.NewStore(inner, nil)
	require.NoError(t, seed.Upsert(ctx, "closures", core.Entry{Text: "saved"}))

	store := core.NewStore(&failingRepository{Repository: inner}, nil)
	require.NoError(t, store.Load(ctx))

	err := store.Upsert(ctx, "generators", core.Entry{Text: "x"})
	require.Error(t, err)
	_, ok := store.Get("generators")
	assert.False(t, ok)

	err = store.Upsert(ctx, "closures", core.Entry{Text: "changed"})
	require.Error(t, err)
	e, _ := store.Get("closures")
	assert.Equal(t, "saved", e.Text)

	in := core.NewKnowledge()
	in.Set("promises", core.Entry{Text: "y"})
	n, err := store.Import(ctx, in)
	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, []string{"closures"}, store.Keys())
}

// gatedRepository blocks the first Save until release is closed.
type gatedRepository struct {
	*memory.Repository
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedRepository) Save(ctx context.Context, k *core.Knowledge) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.Repository.Save(ctx, k)
}

func TestStore_ConcurrentWritesPersistInOrder(t *testing.T) {
	ctx := context.Background()
	repo := &gatedRepository{
		Repository: memory.NewRepository(),
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	store := core.NewStore(repo, nil)
	require.NoError(t, store.Load(ctx))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, store.Upsert(ctx, "a", core.Entry{Text: "1"}))
	}()
	<-repo.entered

	go func() {
		defer wg.Done()
		in := core.NewKnowledge()
		in.Set("b", core.Entry{Text: "2"})
		_, err := store.Import(ctx, in)
		assert.NoError(t, err)
	}()
	time.Sleep(20 * time.Millisecond)
	close(repo.release)
	wg.Wait()

	persisted, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, store.Keys())
	assert.Equal(t, store.Keys(), persisted.Keys(), "slot matches memory")
}

func TestStore_LoadNormalizesKeys(t *testing.T) {
	payload := `{"React Props":{"text":"props"},"  ":{"text":"blank"},"closures":{"text":"scope"}}`
	store := core.NewStore(memory.NewRepositoryWithPayload([]byte(payload)), nil)
	require.NoError(t, store.Load(context.Background()))

	assert.Equal(t, []string{"react props", "closures"}, store.Keys())
	e, ok := store.Get("react props")
	require.True(t, ok)
	assert.Equal(t, "props", e.Text)

	m, ok := core.NewResolver().Resolve("React Props", store.Snapshot())
	require.True(t, ok)
	assert.True(t, m.UserContributed())
}

func TestStore_Import(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	store := core.NewStore(repo, nil)
	require.NoError(t, store.Upsert(ctx, "closures", core.Entry{Text: "old"}))

	in := core.NewKnowledge()
	in.Set("Closures", core.Entry{Text: "new"})
	in.Set("generators", core.Entry{Text: "yield"})
	in.Set("  ", core.Entry{Text: "ignored"})

	n, err := store.Import(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"closures", "generators"}, store.Keys())
	assert.Equal(t, 2, repo.Saves())
}

func TestStore_Filter(t *testing.T) {
	ctx := context.Background()
	store := core.NewStore(memory.NewRepository(), nil)
	for _, key := range []string{"react context", "react props", "closures", "redux"} {
		require.NoError(t, store.Upsert(ctx, key, core.Entry{Text: key}))
	}

	got, err := store.Filter("react*")
	require.NoError(t, err)
	assert.Equal(t, []string{"react context", "react props"}, got.Keys())

	got, err = store.Filter("{closures,redux}")
	require.NoError(t, err)
	assert.Equal(t, []string{"closures", "redux"}, got.Keys())

	got, err = store.Filter("")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Len())

	_, err = store.Filter("[unclosed")
	assert.Error(t, err)
}

func TestStore_State(t *testing.T) {
	store := core.NewStore(memory.NewRepository(), nil)
	require.NoError(t, store.Load(context.Background()))

	state, ok := store.State().(core.StoreState)
	require.True(t, ok)
	assert.True(t, state.Loaded)
	assert.Equal(t, "memory", state.RepositoryType)
	assert.Equal(t, "store", store.ComponentType())
}
