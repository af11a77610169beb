package rm_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jpl-au/entlog/internal/catalog"
	"github.com/jpl-au/entlog/internal/config"
	"github.com/jpl-au/entlog/internal/rm"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "rm.db"))
	require.NoError(t, err)
	require.NoError(t, st.Init())
	svc := catalog.NewWithStore(st, &config.Config{}, catalog.WithMediaDir(t.TempDir()))
	defer svc.Close()
	ctx := context.Background()

	a, err := svc.CreateEntity(ctx, store.EntityInput{EntityType: "website", Name: "A", Locator: "l", Tags: []string{"web"}})
	require.NoError(t, err)
	b, err := svc.CreateEntity(ctx, store.EntityInput{EntityType: "website", Name: "B", Locator: "l"})
	require.NoError(t, err)

	var buf bytes.Buffer
	results, err := rm.Run(ctx, &buf, svc, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []rm.Result{{ID: a.ID, Name: "A"}, {ID: b.ID, Name: "B"}}, results)
	assert.Contains(t, buf.String(), "Deleted entity 1 (A)")

	_, err = svc.Entity(ctx, a.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	tags, err := svc.ListTags(ctx, "", 0, 10)
	require.NoError(t, err)
	assert.Len(t, tags, 1, "registry keeps tags of deleted entities")
}

func TestRun_StopsAtMissing(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "rm.db"))
	require.NoError(t, err)
	require.NoError(t, st.Init())
	svc := catalog.NewWithStore(st, &config.Config{}, catalog.WithMediaDir(t.TempDir()))
	defer svc.Close()
	ctx := context.Background()

	a, err := svc.CreateEntity(ctx, store.EntityInput{EntityType: "website", Name: "A", Locator: "l"})
	require.NoError(t, err)

	var buf bytes.Buffer
	results, err := rm.Run(ctx, &buf, svc, a.ID, 42, a.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Len(t, results, 1)
}
