package tag_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jpl-au/entlog/internal/catalog"
	"github.com/jpl-au/entlog/internal/config"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/jpl-au/entlog/internal/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupService creates a catalog over a temporary database along with its
// store so tests can write around the registry.
func setupService(t *testing.T) (service.Service, *store.SQLiteStore) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "tag.db"))
	require.NoError(t, err)
	require.NoError(t, st.Init())

	svc := catalog.NewWithStore(st, &config.Config{}, catalog.WithMediaDir(t.TempDir()))
	t.Cleanup(func() { svc.Close() })
	return svc, st
}

func create(t *testing.T, svc service.Service, name string, tags ...string) *store.Entity {
	t.Helper()
	e, err := svc.CreateEntity(context.Background(), store.EntityInput{
		EntityType: "website", Name: name, Locator: "l", Tags: tags,
	})
	require.NoError(t, err)
	return e
}

func TestList(t *testing.T) {
	svc, _ := setupService(t)
	create(t, svc, "a", "web", "demo")

	var buf bytes.Buffer
	result, err := tag.List(context.Background(), &buf, svc, "", 0, 100)
	require.NoError(t, err)
	require.Len(t, result.Tags, 2)
	assert.Equal(t, "demo", result.Tags[0].Name)
	assert.Contains(t, buf.String(), "web")
}

func TestRenameAndDelete(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	e := create(t, svc, "a", "web")

	list, err := tag.List(ctx, &bytes.Buffer{}, svc, "web", 0, 10)
	require.NoError(t, err)
	require.Len(t, list.Tags, 1)
	id := list.Tags[0].ID

	var buf bytes.Buffer
	result, err := tag.Rename(ctx, &buf, svc, id, "site")
	require.NoError(t, err)
	assert.Equal(t, "site", result.Tag.Name)
	assert.Contains(t, buf.String(), `"site"`)

	got, err := svc.Entity(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"site"}, got.Tags)

	result, err = tag.Delete(ctx, &buf, svc, id)
	require.NoError(t, err)
	assert.Equal(t, "delete", result.Action)

	got, err = svc.Entity(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)

	_, err = tag.Delete(ctx, &buf, svc, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSync(t *testing.T) {
	svc, st := setupService(t)
	ctx := context.Background()

	// Bypass the catalog so the registry misses these tags.
	require.NoError(t, st.CreateEntity(ctx, &store.Entity{EntityType: "w", Name: "n", Locator: "l", Tags: []string{"x", "y"}}))

	var buf bytes.Buffer
	result, err := tag.Sync(ctx, &buf, svc)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, "Registered 2 tag(s)\n", buf.String())

	result, err = tag.Sync(ctx, &buf, svc)
	require.NoError(t, err)
	assert.Zero(t, result.Created)
}
