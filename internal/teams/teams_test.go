package teams

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-tables/internal/kv"
)

var mlb = []string{
	"Baltimore Orioles",
	"Boston Red Sox",
	"Chicago White Sox",
	"Chicago Cubs",
	"New York Yankees",
}

type countingLoader struct {
	calls atomic.Int32
	names []string
	err   error
}

func (l *countingLoader) TeamNames(context.Context, string) ([]string, error) {
	l.calls.Add(1)
	return l.names, l.err
}

type rebuildCounter map[string]int

func (c rebuildCounter) RegistryRebuild(league string) { c[league]++ }

func newRegistry(t *testing.T, loader Loader, obs Observer) (*Registry, kv.Store) {
	t.Helper()
	store := kv.NewMemory(0)
	t.Cleanup(func() { store.Close() })
	return NewRegistry(store, loader, nil, obs), store
}

func TestResolve(t *testing.T) {
	reg, _ := newRegistry(t, &countingLoader{names: mlb}, nil)
	ctx := context.Background()

	cases := []struct {
		query string
		want  int
	}{
		{"baltimore", 1},
		{"boston+red+sox", 2},
		{"Boston_Red-Sox", 2},
		{"chicago-white", 3},
		{"NEW YORK", 5},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			got, err := reg.Resolve(ctx, "mlb", tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveRejectsAmbiguousAndMissing(t *testing.T) {
	reg, _ := newRegistry(t, &countingLoader{names: mlb}, nil)
	ctx := context.Background()

	_, err := reg.Resolve(ctx, "mlb", "chicago")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, []string{"Chicago White Sox", "Chicago Cubs"}, nf.Candidates)

	_, err = reg.Resolve(ctx, "mlb", "bostn red sox")
	require.True(t, errors.As(err, &nf))
	assert.Empty(t, nf.Candidates)
	assert.Equal(t, "Boston Red Sox", nf.Suggestion)

	_, err = reg.Resolve(ctx, "mlb", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveIsIdempotent(t *testing.T) {
	loader := &countingLoader{names: mlb}
	obs := rebuildCounter{}
	reg, _ := newRegistry(t, loader, obs)
	ctx := context.Background()

	first, err := reg.Resolve(ctx, "mlb", "boston")
	require.NoError(t, err)
	second, err := reg.Resolve(ctx, "mlb", "boston")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, loader.calls.Load())
	assert.Equal(t, 1, obs["mlb"])
}

func TestRegistryNeverReorders(t *testing.T) {
	loader := &countingLoader{names: mlb}
	reg, store := newRegistry(t, loader, nil)
	ctx := context.Background()

	// An entry written elsewhere first wins over a fresh load.
	_, err := store.SetNX(ctx, Key("mlb"), []byte(`["Boston Red Sox","Baltimore Orioles"]`))
	require.NoError(t, err)

	n, err := reg.Resolve(ctx, "mlb", "boston")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.EqualValues(t, 0, loader.calls.Load())
}

func TestNFLUsesFixedOrder(t *testing.T) {
	loader := &countingLoader{names: []string{"Arizona Cardinals"}}
	reg, _ := newRegistry(t, loader, nil)
	ctx := context.Background()

	names, err := reg.Names(ctx, "nfl")
	require.NoError(t, err)
	assert.Len(t, names, 34)
	assert.EqualValues(t, 0, loader.calls.Load())

	n, err := reg.Resolve(ctx, "nfl", "new-england")
	require.NoError(t, err)
	assert.Equal(t, 17, n)

	n, err = reg.Resolve(ctx, "nfl", "houston")
	require.NoError(t, err)
	assert.Equal(t, 34, n)
}

func TestRebuildFailureIsNotPersisted(t *testing.T) {
	loader := &countingLoader{err: errors.New("upstream down")}
	reg, store := newRegistry(t, loader, nil)
	ctx := context.Background()

	_, err := reg.Resolve(ctx, "nhl", "boston")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, Key("nhl"))
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestReset(t *testing.T) {
	loader := &countingLoader{names: mlb}
	reg, _ := newRegistry(t, loader, nil)
	ctx := context.Background()

	_, err := reg.Names(ctx, "mlb")
	require.NoError(t, err)
	require.NoError(t, reg.Reset(ctx, "mlb"))
	_, err = reg.Names(ctx, "mlb")
	require.NoError(t, err)
	assert.EqualValues(t, 2, loader.calls.Load())
}

type blockingLoader struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (l *blockingLoader) TeamNames(ctx context.Context, _ string) ([]string, error) {
	if l.calls.Add(1) == 1 {
		close(l.started)
	}
	<-l.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return mlb, nil
}

func TestCancelledCallerDoesNotFailOthers(t *testing.T) {
	loader := &blockingLoader{started: make(chan struct{}), release: make(chan struct{})}
	reg, _ := newRegistry(t, loader, nil)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := reg.Names(firstCtx, "mlb")
		firstErr <- err
	}()
	<-loader.started

	type result struct {
		names []string
		err   error
	}
	second := make(chan result, 1)
	go func() {
		names, err := reg.Names(context.Background(), "mlb")
		second <- result{names, err}
	}()

	cancel()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(loader.release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Equal(t, mlb, res.names)
	case <-time.After(time.Second):
		t.Fatal("second caller did not return")
	}
	assert.EqualValues(t, 1, loader.calls.Load())
}
