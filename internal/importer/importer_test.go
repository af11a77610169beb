package importer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/entlog/internal/catalog"
	"github.com/jpl-au/entlog/internal/config"
	"github.com/jpl-au/entlog/internal/exporter"
	"github.com/jpl-au/entlog/internal/importer"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) service.Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, st.Init())
	svc := catalog.NewWithStore(st, &config.Config{}, catalog.WithMediaDir(t.TempDir()))
	t.Cleanup(func() { svc.Close() })
	return svc
}

func seed(t *testing.T, svc service.Service) {
	t.Helper()
	ctx := context.Background()
	off := false
	_, err := svc.CreateEntity(ctx, store.EntityInput{
		EntityType: "website", Name: "Foo", Locator: "https://foo", Tags: []string{"web"},
		Attributes: map[string]store.AttributeInput{"port": {Description: "80", Active: &off}},
	})
	require.NoError(t, err)
	_, err = svc.CreateEntity(ctx, store.EntityInput{EntityType: "service", Name: "Bar", Locator: "10.0.0.1"})
	require.NoError(t, err)
	svc.SyncTags(ctx, []string{"unused"})
}

func TestRoundTrip(t *testing.T) {
	src := setupService(t)
	seed(t, src)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "dump.json")
	var out bytes.Buffer
	exp, err := exporter.Run(ctx, &out, src, path, exporter.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, exp.Exported)
	assert.Contains(t, out.String(), "Exported 2 entities")

	d, err := importer.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"unused", "web"}, d.Tags)

	dst := setupService(t)
	res, err := importer.Run(ctx, &out, dst, d, importer.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	require.Len(t, res.IDs, 2)

	all, err := dst.AllEntities(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	var foo store.Entity
	for _, e := range all {
		if e.Name == "Foo" {
			foo = e
		}
	}
	assert.Equal(t, []string{"web"}, foo.Tags)
	assert.False(t, foo.Attributes["port"].IsActive())
	assert.Equal(t, "port", foo.Attributes["port"].Key)

	tags, err := dst.ListTags(ctx, "", 0, 10)
	require.NoError(t, err)
	assert.Len(t, tags, 2, "registry-only tags are restored")
}

func TestExport_Stdout(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)

	var out bytes.Buffer
	_, err := exporter.Run(context.Background(), &out, svc, "-", exporter.Options{})
	require.NoError(t, err)

	d, err := importer.Read(&out)
	require.NoError(t, err)
	assert.Len(t, d.Entities, 2)
	assert.Equal(t, exporter.DumpVersion, d.Version)
}

func TestExport_RefusesOverwrite(t *testing.T) {
	svc := setupService(t)
	path := filepath.Join(t.TempDir(), "dump.json")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	var out bytes.Buffer
	_, err := exporter.Run(context.Background(), &out, svc, path, exporter.Options{})
	assert.ErrorContains(t, err, "file exists")

	_, err = exporter.Run(context.Background(), &out, svc, path, exporter.Options{Force: true})
	assert.NoError(t, err)
}

func TestExport_Markdown(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)
	dir := filepath.Join(t.TempDir(), "md")

	var out bytes.Buffer
	res, err := exporter.Run(context.Background(), &out, svc, dir, exporter.Options{Markdown: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Exported)

	data, err := os.ReadFile(filepath.Join(dir, "1.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Foo")

	_, err = exporter.Run(context.Background(), &out, svc, "", exporter.Options{Markdown: true})
	assert.Error(t, err)
}

func TestRun_DryRun(t *testing.T) {
	d := exporter.Dump{Version: 1, Entities: []store.EntityJSON{{ID: 9, EntityType: "t", Name: "n", Locator: "l"}}}

	var out bytes.Buffer
	res, err := importer.Run(context.Background(), &out, nil, d, importer.Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Empty(t, res.IDs)
	assert.Contains(t, out.String(), "Would import: 9 (t) n")
}

func TestRun_InvalidEntity(t *testing.T) {
	svc := setupService(t)
	d := exporter.Dump{Version: 1, Entities: []store.EntityJSON{{ID: 1, EntityType: "t", Locator: "l"}}}

	var out bytes.Buffer
	_, err := importer.Run(context.Background(), &out, svc, d, importer.Options{})
	assert.ErrorContains(t, err, "importing entity 1")
}

func TestRead_Errors(t *testing.T) {
	_, err := importer.Read(strings.NewReader("{"))
	assert.Error(t, err)

	_, err = importer.Read(strings.NewReader(`{"version": 99}`))
	assert.ErrorIs(t, err, importer.ErrUnsupportedVersion)

	_, err = importer.Read(strings.NewReader(`{"entities": []}`))
	assert.ErrorIs(t, err, importer.ErrUnsupportedVersion)
}
